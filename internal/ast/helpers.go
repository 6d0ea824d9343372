package ast

// RuntimeHelper identifies a function of the target runtime that generated
// code calls. Only helpers actually used by a template end up imported.
type RuntimeHelper int

const (
	Fragment RuntimeHelper = iota
	Teleport
	Suspense
	KeepAlive
	BaseTransition
	OpenBlock
	CreateBlock
	CreateElementBlock
	CreateVNode
	CreateElementVNode
	CreateComment
	CreateText
	CreateStatic
	ResolveComponent
	ResolveDynamicComponent
	ResolveDirective
	ResolveFilter
	WithDirectives
	RenderList
	RenderSlot
	CreateSlots
	ToDisplayString
	MergeProps
	NormalizeClass
	NormalizeStyle
	NormalizeProps
	GuardReactiveProps
	ToHandlers
	Camelize
	Capitalize
	ToHandlerKey
	SetBlockTracking
	PushScopeID
	PopScopeID
	WithCtx
	Unref
	IsRef
	WithMemo
	IsMemoSame

	// DOM runtime
	VShow
	VModelText
	VModelCheckbox
	VModelRadio
	VModelSelect
	VModelDynamic
	WithModifiers
	WithKeys
	Transition
	TransitionGroup

	// server rendering; keep contiguous, IsSSR depends on it
	SSRInterpolate
	SSRRenderVNode
	SSRRenderComponent
	SSRRenderSlot
	SSRRenderSlotInner
	SSRRenderClass
	SSRRenderStyle
	SSRRenderAttrs
	SSRRenderAttr
	SSRRenderDynamicAttr
	SSRRenderList
	SSRIncludeBooleanAttr
	SSRLooseEqual
	SSRLooseContain
	SSRRenderDynamicModel
	SSRGetDynamicModelProps
	SSRRenderTeleport
	SSRRenderSuspense
	SSRGetDirectiveProps

	helperCount
)

var helperNames = [helperCount]string{
	Fragment:                "Fragment",
	Teleport:                "Teleport",
	Suspense:                "Suspense",
	KeepAlive:               "KeepAlive",
	BaseTransition:          "BaseTransition",
	OpenBlock:               "openBlock",
	CreateBlock:             "createBlock",
	CreateElementBlock:      "createElementBlock",
	CreateVNode:             "createVNode",
	CreateElementVNode:      "createElementVNode",
	CreateComment:           "createCommentVNode",
	CreateText:              "createTextVNode",
	CreateStatic:            "createStaticVNode",
	ResolveComponent:        "resolveComponent",
	ResolveDynamicComponent: "resolveDynamicComponent",
	ResolveDirective:        "resolveDirective",
	ResolveFilter:           "resolveFilter",
	WithDirectives:          "withDirectives",
	RenderList:              "renderList",
	RenderSlot:              "renderSlot",
	CreateSlots:             "createSlots",
	ToDisplayString:         "toDisplayString",
	MergeProps:              "mergeProps",
	NormalizeClass:          "normalizeClass",
	NormalizeStyle:          "normalizeStyle",
	NormalizeProps:          "normalizeProps",
	GuardReactiveProps:      "guardReactiveProps",
	ToHandlers:              "toHandlers",
	Camelize:                "camelize",
	Capitalize:              "capitalize",
	ToHandlerKey:            "toHandlerKey",
	SetBlockTracking:        "setBlockTracking",
	PushScopeID:             "pushScopeId",
	PopScopeID:              "popScopeId",
	WithCtx:                 "withCtx",
	Unref:                   "unref",
	IsRef:                   "isRef",
	WithMemo:                "withMemo",
	IsMemoSame:              "isMemoSame",
	VShow:                   "vShow",
	VModelText:              "vModelText",
	VModelCheckbox:          "vModelCheckbox",
	VModelRadio:             "vModelRadio",
	VModelSelect:            "vModelSelect",
	VModelDynamic:           "vModelDynamic",
	WithModifiers:           "withModifiers",
	WithKeys:                "withKeys",
	Transition:              "Transition",
	TransitionGroup:         "TransitionGroup",
	SSRInterpolate:          "ssrInterpolate",
	SSRRenderVNode:          "ssrRenderVNode",
	SSRRenderComponent:      "ssrRenderComponent",
	SSRRenderSlot:           "ssrRenderSlot",
	SSRRenderSlotInner:      "ssrRenderSlotInner",
	SSRRenderClass:          "ssrRenderClass",
	SSRRenderStyle:          "ssrRenderStyle",
	SSRRenderAttrs:          "ssrRenderAttrs",
	SSRRenderAttr:           "ssrRenderAttr",
	SSRRenderDynamicAttr:    "ssrRenderDynamicAttr",
	SSRRenderList:           "ssrRenderList",
	SSRIncludeBooleanAttr:   "ssrIncludeBooleanAttr",
	SSRLooseEqual:           "ssrLooseEqual",
	SSRLooseContain:         "ssrLooseContain",
	SSRRenderDynamicModel:   "ssrRenderDynamicModel",
	SSRGetDynamicModelProps: "ssrGetDynamicModelProps",
	SSRRenderTeleport:       "ssrRenderTeleport",
	SSRRenderSuspense:       "ssrRenderSuspense",
	SSRGetDirectiveProps:    "ssrGetDirectiveProps",
}

// Name returns the symbol generated code references for the helper.
func (h RuntimeHelper) Name() string {
	if h < 0 || h >= helperCount {
		return "unknown"
	}
	return helperNames[h]
}

// String implements fmt.Stringer
func (h RuntimeHelper) String() string {
	return h.Name()
}

// IsSSR reports whether the helper belongs to the server-rendering runtime.
func (h RuntimeHelper) IsSSR() bool {
	return h >= SSRInterpolate && h < helperCount
}

// AllHelpers returns every registered helper in declaration order.
func AllHelpers() []RuntimeHelper {
	out := make([]RuntimeHelper, 0, helperCount)
	for h := RuntimeHelper(0); h < helperCount; h++ {
		out = append(out, h)
	}
	return out
}

// HelperByName looks a helper up by its symbol name.
func HelperByName(name string) (RuntimeHelper, bool) {
	for h := RuntimeHelper(0); h < helperCount; h++ {
		if helperNames[h] == name {
			return h, true
		}
	}
	return 0, false
}
