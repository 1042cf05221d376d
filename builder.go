package hooks

// DefaultHookOn is the on-mask installed when a payload does not specify
// one. The reserved-bit pattern selects every transaction type the network
// allows a hook to intercept.
const DefaultHookOn = "0xFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFBFFFFF"

// BuildOptions are the inputs to BuildPayload. All fields are optional.
type BuildOptions struct {
	// APIVersion is set on the payload iff non-nil. An explicit zero is a
	// real value and is preserved; use Uint16(0).
	APIVersion *uint16

	// NamespaceSeed, when non-empty, is digested with NamespaceDigest and
	// stored as the payload namespace. The raw seed is never stored.
	NamespaceSeed string

	// Flags is set on the payload iff non-zero. Unlike APIVersion, a zero
	// here is indistinguishable from absent; the wire format omits zero
	// Flags, so the asymmetry is kept for payload compatibility.
	Flags uint32

	// HookOn overrides DefaultHookOn verbatim when non-empty.
	HookOn string

	// Parameters are hex-normalized via EncodeParameters when non-nil.
	Parameters []Parameter

	// Grants are passed through unmodified when non-nil.
	Grants []Grant
}

// BuildPayload assembles a SetHookPayload from optional inputs. It always
// succeeds: the encoders never fail on well-typed input, and HookOn always
// ends up present (caller value or DefaultHookOn).
func BuildPayload(opts BuildOptions) SetHookPayload {
	payload := SetHookPayload{
		HookOn: DefaultHookOn,
	}

	if opts.APIVersion != nil {
		v := *opts.APIVersion
		payload.APIVersion = &v
	}
	if opts.NamespaceSeed != "" {
		payload.Namespace = NamespaceDigest(opts.NamespaceSeed)
	}
	if opts.Flags != 0 {
		payload.Flags = opts.Flags
	}
	if opts.HookOn != "" {
		payload.HookOn = opts.HookOn
	}
	if opts.Parameters != nil {
		payload.Parameters = EncodeParameters(opts.Parameters)
	}
	if opts.Grants != nil {
		payload.Grants = make([]Grant, len(opts.Grants))
		copy(payload.Grants, opts.Grants)
	}

	return payload
}

// Uint16 returns a pointer to v, for BuildOptions.APIVersion.
func Uint16(v uint16) *uint16 {
	return &v
}
