package booking

// edges is the transition graph: from -> to -> roles allowed to drive the edge.
var edges = map[Status]map[Status][]ActorRole{
	StatusDraft: {
		StatusQuoteRequested: {RoleCouple},
	},
	StatusQuoteRequested: {
		StatusQuoteSent: {RoleSystem},
	},
	StatusQuoteSent: {
		StatusQuoteAccepted: {RoleCouple},
		StatusQuoteRejected: {RoleCouple},
	},
	StatusQuoteRejected: {
		StatusQuoteRequested: {RoleCouple},
	},
	StatusQuoteAccepted: {
		StatusConfirmed:       {RoleVendor},
		StatusDownpaymentPaid: {RoleSystem},
		StatusFullyPaid:       {RoleSystem},
	},
	StatusConfirmed: {
		StatusDownpaymentPaid: {RoleSystem},
		StatusFullyPaid:       {RoleSystem},
		StatusInProgress:      {RoleVendor},
	},
	StatusDownpaymentPaid: {
		StatusFullyPaid:  {RoleSystem},
		StatusInProgress: {RoleVendor},
	},
	StatusFullyPaid: {
		StatusInProgress: {RoleVendor},
	},
	StatusInProgress: {
		StatusVendorCompleted: {RoleSystem},
		StatusCoupleCompleted: {RoleSystem},
		// a withdrawn dispute returns here with one completion flag possibly already set
		StatusCompleted: {RoleSystem},
	},
	StatusVendorCompleted: {
		StatusCompleted: {RoleSystem},
	},
	StatusCoupleCompleted: {
		StatusCompleted: {RoleSystem},
	},
	StatusDisputed: {
		StatusInProgress:        {RoleCouple, RoleVendor},
		StatusRefunded:          {RoleVendor},
		StatusCancelledByCouple: {RoleCouple},
		StatusCancelledByVendor: {RoleVendor},
	},
}

func init() {
	cancellable := []Status{
		StatusDraft, StatusQuoteRequested, StatusQuoteSent, StatusQuoteAccepted, StatusQuoteRejected,
		StatusConfirmed, StatusDownpaymentPaid, StatusFullyPaid, StatusInProgress,
	}
	for _, from := range cancellable {
		addEdge(from, StatusCancelledByCouple, RoleCouple)
		addEdge(from, StatusCancelledByVendor, RoleVendor)
	}

	disputable := []Status{
		StatusConfirmed, StatusDownpaymentPaid, StatusFullyPaid,
		StatusInProgress, StatusVendorCompleted, StatusCoupleCompleted,
	}
	for _, from := range disputable {
		addEdge(from, StatusDisputed, RoleCouple, RoleVendor)
	}
}

func addEdge(from, to Status, roles ...ActorRole) {
	if edges[from] == nil {
		edges[from] = map[Status][]ActorRole{}
	}
	edges[from][to] = roles
}

func IsValidTransition(from, to Status) bool {
	_, ok := edges[from][to]
	return ok
}

// AllowedActors returns the roles permitted to drive from -> to, or nil when the edge does not exist.
func AllowedActors(from, to Status) []ActorRole {
	roles, ok := edges[from][to]
	if !ok {
		return nil
	}
	out := make([]ActorRole, len(roles))
	copy(out, roles)
	return out
}

func CanActorTransition(from, to Status, role ActorRole) bool {
	for _, r := range edges[from][to] {
		if r == role {
			return true
		}
	}
	return false
}

// NextStatuses lists reachable statuses from `from` in registry order.
func NextStatuses(from Status) []Status {
	targets := edges[from]
	out := make([]Status, 0, len(targets))
	for _, s := range allStatuses {
		if _, ok := targets[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

type Edge struct {
	From   Status
	To     Status
	Actors []ActorRole
}

// Graph returns every edge ordered by (from, to) registry position.
func Graph() []Edge {
	var out []Edge
	for _, from := range allStatuses {
		for _, to := range NextStatuses(from) {
			out = append(out, Edge{From: from, To: to, Actors: AllowedActors(from, to)})
		}
	}
	return out
}
