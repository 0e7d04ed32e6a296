package core

import "strings"

type NavigationKind string

const (
	NavigationKindRecord        NavigationKind = "record"
	NavigationKindLink          NavigationKind = "link"
	NavigationKindQuickAction   NavigationKind = "quickAction"
	NavigationKindPageReference NavigationKind = "pageReference"
	NavigationKindObjectHome    NavigationKind = "objectHome"
	NavigationKindApp           NavigationKind = "app"
	NavigationKindUnknown       NavigationKind = "unknown"
)

// NavigationRequest is a destination request raised by the conversational
// surface, tagged by destination kind with kind-specific fields.
type NavigationRequest struct {
	Kind NavigationKind

	// record
	RecordID string
	// link
	URL string
	// quickAction
	ActionName string
	// pageReference
	PageReference map[string]any
	// objectHome
	ObjectAPIName string
	// app
	AppTarget string
}

var knownNavigationKinds = map[NavigationKind]struct{}{
	NavigationKindRecord:        {},
	NavigationKindLink:          {},
	NavigationKindQuickAction:   {},
	NavigationKindPageReference: {},
	NavigationKindObjectHome:    {},
	NavigationKindApp:           {},
	NavigationKindUnknown:       {},
}

// Normalize maps unrecognized destination kinds to unknown and trims
// identifier fields. Payload fields of other kinds are left untouched.
func (r NavigationRequest) Normalize() NavigationRequest {
	out := r
	kind := NavigationKind(strings.TrimSpace(string(r.Kind)))
	if _, ok := knownNavigationKinds[kind]; !ok || kind == "" {
		kind = NavigationKindUnknown
	}
	out.Kind = kind
	out.RecordID = strings.TrimSpace(r.RecordID)
	out.URL = strings.TrimSpace(r.URL)
	out.ActionName = strings.TrimSpace(r.ActionName)
	out.ObjectAPIName = strings.TrimSpace(r.ObjectAPIName)
	out.AppTarget = strings.TrimSpace(r.AppTarget)
	if len(r.PageReference) > 0 {
		ref := make(map[string]any, len(r.PageReference))
		for key, value := range r.PageReference {
			ref[key] = value
		}
		out.PageReference = ref
	}
	return out
}
