package hooks

import (
	"encoding/json"
)

// Parameter is a single hook parameter name/value pair. Both fields are
// stored hex-encoded in a payload; see EncodeParameters.
type Parameter struct {
	Name  string
	Value string
}

// MarshalJSON renders the nested wire object the network expects:
//
//	{"HookParameter": {"HookParameterName": ..., "HookParameterValue": ...}}
func (p Parameter) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireParameter{Parameter: wireParameterInner{
		Name:  p.Name,
		Value: p.Value,
	}})
}

// UnmarshalJSON parses the nested wire object form.
func (p *Parameter) UnmarshalJSON(data []byte) error {
	var w wireParameter
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	p.Name = w.Parameter.Name
	p.Value = w.Parameter.Value
	return nil
}

type wireParameter struct {
	Parameter wireParameterInner `json:"HookParameter"`
}

type wireParameterInner struct {
	Name  string `json:"HookParameterName"`
	Value string `json:"HookParameterValue,omitempty"`
}

// Grant authorizes another hook (and optionally a specific account) to
// access this hook's state. Grants are passed through to the network
// unmodified.
type Grant struct {
	HookHash  string
	Authorize string
}

// MarshalJSON renders the nested wire object form.
func (g Grant) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireGrant{Grant: wireGrantInner{
		HookHash:  g.HookHash,
		Authorize: g.Authorize,
	}})
}

// UnmarshalJSON parses the nested wire object form.
func (g *Grant) UnmarshalJSON(data []byte) error {
	var w wireGrant
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	g.HookHash = w.Grant.HookHash
	g.Authorize = w.Grant.Authorize
	return nil
}

type wireGrant struct {
	Grant wireGrantInner `json:"HookGrant"`
}

type wireGrantInner struct {
	HookHash  string `json:"HookHash"`
	Authorize string `json:"Authorize,omitempty"`
}

// SetHookPayload is the hook definition installed by a SetHook transaction.
// Build one with BuildPayload or Pipeline.Build; a payload is not mutated
// after construction, the single code-attachment step returns a new value.
//
// Field names match the network wire shape. APIVersion is a pointer so an
// explicit zero survives marshalling, while a zero Flags field is treated
// as unset and omitted, matching what the network accepts.
type SetHookPayload struct {
	APIVersion *uint16     `json:"HookApiVersion,omitempty"`
	Namespace  string      `json:"HookNamespace,omitempty"`
	Flags      uint32      `json:"Flags,omitempty"`
	HookOn     string      `json:"HookOn"`
	Parameters []Parameter `json:"HookParameters,omitempty"`
	Grants     []Grant     `json:"HookGrants,omitempty"`
	CreateCode string      `json:"CreateCode,omitempty"`
}

// WithCode returns a copy of the payload with the compiled hook code
// attached. code must be the uppercase hex transcription of the cleaned
// artifact bytes.
func (p SetHookPayload) WithCode(code string) SetHookPayload {
	clone := p.clone()
	clone.CreateCode = code
	return clone
}

// HasCode reports whether compiled code is attached.
func (p SetHookPayload) HasCode() bool {
	return p.CreateCode != ""
}

// clone creates a copy with its own parameter and grant slices.
func (p SetHookPayload) clone() SetHookPayload {
	clone := p
	if p.Parameters != nil {
		clone.Parameters = make([]Parameter, len(p.Parameters))
		copy(clone.Parameters, p.Parameters)
	}
	if p.Grants != nil {
		clone.Grants = make([]Grant, len(p.Grants))
		copy(clone.Grants, p.Grants)
	}
	return clone
}
