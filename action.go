package httpcache

// Action, Fetch and Stage are the tagged variants the decision engine hands back to an
// adapter (spec §3, §9: "tagged variants over dynamic dispatch"). Each is a sealed
// interface with a small set of concrete, exhaustively-switchable implementations;
// adapters type-switch on the concrete type rather than calling virtual methods.

// Action is the result of before_request: either a cached response ready to return, or
// a remote fetch to perform.
type Action interface{ isAction() }

// ActionCached means a response is ready to return without touching the network.
type ActionCached struct {
	Response HttpResponse
}

// ActionRemote means the adapter must proceed with a network fetch, per Fetch.
type ActionRemote struct {
	Fetch Fetch
}

func (ActionCached) isAction() {}
func (ActionRemote) isAction() {}

// Fetch is the kind of network fetch before_request has determined is necessary.
type Fetch interface{ isFetch() }

// FetchNormal means the adapter should proceed with an ordinary request.
type FetchNormal struct{}

// FetchForceNoCache means the adapter must set Cache-Control: no-cache on the outgoing
// request before fetching (the cached entry is being forcibly revalidated).
type FetchForceNoCache struct{}

// FetchConditional means the adapter must drive the conditional-request protocol via
// before_conditional_fetch/after_conditional_fetch, starting from Stage.
type FetchConditional struct {
	Stage Stage
}

func (FetchNormal) isFetch()       {}
func (FetchForceNoCache) isFetch() {}
func (FetchConditional) isFetch()  {}

// Stage is a step of the conditional-request protocol.
type Stage interface{ isStage() }

// StageBeforeFetch is the stage produced by before_request when a stored response must
// be checked for freshness before a conditional fetch.
type StageBeforeFetch struct {
	Response HttpResponse
	Policy   CachePolicy
}

// StageCached is the stage produced by before_conditional_fetch when the stored
// response turned out to be fresh: return it directly, skipping the fetch.
type StageCached struct {
	Response HttpResponse
}

// StageUpdateRequestHeaders is the stage produced by before_conditional_fetch when the
// stored response is stale: the adapter must copy RequestParts' headers onto the
// outgoing request, perform the fetch, then call after_conditional_fetch.
type StageUpdateRequestHeaders struct {
	RequestParts RequestParts
}

func (StageBeforeFetch) isStage()          {}
func (StageCached) isStage()               {}
func (StageUpdateRequestHeaders) isStage() {}
