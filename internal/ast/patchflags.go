package ast

import (
	"sort"
	"strings"
)

// PatchFlag is the bitmask generated on node-creation calls telling the
// runtime which parts of the node may change.
type PatchFlag int

const (
	PatchFlagText            PatchFlag = 1
	PatchFlagClass           PatchFlag = 1 << 1
	PatchFlagStyle           PatchFlag = 1 << 2
	PatchFlagProps           PatchFlag = 1 << 3
	PatchFlagFullProps       PatchFlag = 1 << 4
	PatchFlagNeedHydration   PatchFlag = 1 << 5
	PatchFlagStableFragment  PatchFlag = 1 << 6
	PatchFlagKeyedFragment   PatchFlag = 1 << 7
	PatchFlagUnkeyedFragment PatchFlag = 1 << 8
	PatchFlagNeedPatch       PatchFlag = 1 << 9
	PatchFlagDynamicSlots    PatchFlag = 1 << 10
	PatchFlagDevRootFragment PatchFlag = 1 << 11
	PatchFlagCached          PatchFlag = -1
	PatchFlagBail            PatchFlag = -2
)

var patchFlagNames = map[PatchFlag]string{
	PatchFlagText:            "TEXT",
	PatchFlagClass:           "CLASS",
	PatchFlagStyle:           "STYLE",
	PatchFlagProps:           "PROPS",
	PatchFlagFullProps:       "FULL_PROPS",
	PatchFlagNeedHydration:   "NEED_HYDRATION",
	PatchFlagStableFragment:  "STABLE_FRAGMENT",
	PatchFlagKeyedFragment:   "KEYED_FRAGMENT",
	PatchFlagUnkeyedFragment: "UNKEYED_FRAGMENT",
	PatchFlagNeedPatch:       "NEED_PATCH",
	PatchFlagDynamicSlots:    "DYNAMIC_SLOTS",
	PatchFlagDevRootFragment: "DEV_ROOT_FRAGMENT",
	PatchFlagCached:          "CACHED",
	PatchFlagBail:            "BAIL",
}

// String returns the flag names joined by ", " (e.g. "TEXT, CLASS").
// Negative flags are special values and never combined.
func (f PatchFlag) String() string {
	if name, ok := patchFlagNames[f]; ok {
		return name
	}
	if f <= 0 {
		return ""
	}
	bits := make([]int, 0, 4)
	for flag := range patchFlagNames {
		if flag > 0 && f&flag != 0 {
			bits = append(bits, int(flag))
		}
	}
	sort.Ints(bits)
	names := make([]string, len(bits))
	for i, b := range bits {
		names[i] = patchFlagNames[PatchFlag(b)]
	}
	return strings.Join(names, ", ")
}
