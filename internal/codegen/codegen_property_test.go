//go:build property

package codegen

import (
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/conneroisu/sfcc/internal/ast"
)

func TestLoopProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1234)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("digit sources are stable regardless of keys", prop.ForAll(
		func(n int, keyed bool) bool {
			var p []ast.Prop
			if keyed {
				p = props(bind("key", "i"))
			}
			f := forNode(strconv.Itoa(n), "i", elem("li", p, interp("i")))
			code, _ := gen(f, Options{})
			return FragmentFlag(f) == ast.PatchFlagStableFragment &&
				strings.HasPrefix(code, "(openBlock(), ") &&
				strings.HasSuffix(code, "64 /* STABLE_FRAGMENT */))")
		},
		gen.IntRange(0, 100000),
		gen.Bool(),
	))

	properties.Property("dynamic sources are keyed iff an element binds a key", prop.ForAll(
		func(source string, keys []bool) bool {
			if len(keys) == 0 {
				return true
			}
			var children []ast.Node
			anyKey := false
			for i, keyed := range keys {
				var p []ast.Prop
				if keyed {
					p = props(bind("key", "k"+strconv.Itoa(i)))
					anyKey = true
				}
				children = append(children, elem("li", p))
			}
			f := forNode(source, "x", children...)
			code, _ := gen(f, Options{})
			want := ast.PatchFlagUnkeyedFragment
			if anyKey {
				want = ast.PatchFlagKeyedFragment
			}
			return FragmentFlag(f) == want && strings.HasPrefix(code, "(openBlock(true), ")
		},
		gen.Identifier(),
		gen.SliceOfN(4, gen.Bool()),
	))

	properties.Property("key is always the first merged prop", prop.ForAll(
		func(names []string) bool {
			p := props()
			for _, name := range names {
				p = append(p, attr(name, "v"))
			}
			p = append(p, bind("key", "item.id"))
			code, _ := gen(forNode("items", "item", elem("li", p)), Options{})
			return strings.Contains(code, "createElementBlock(\"li\", { key: item.id") ||
				strings.Contains(code, "createElementBlock(\"li\", {\n    key: item.id")
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}

func TestConditionalProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1234)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("ternary levels equal conditioned branches", prop.ForAll(
		func(conditioned int, hasElse bool) bool {
			var branches []*ast.IfBranchNode
			for i := range conditioned {
				branches = append(branches, branch("c"+strconv.Itoa(i), elem("p", nil, text("x"))))
			}
			if hasElse {
				branches = append(branches, branch("", elem("p", nil, text("y"))))
			}
			code, _ := gen(ifNode(branches...), Options{})
			fallback := strings.Contains(code, `createCommentVNode("v-if", true)`)
			return strings.Count(code, "? ") == conditioned && fallback == !hasElse
		},
		gen.IntRange(1, 8),
		gen.Bool(),
	))

	properties.Property("unkeyed branches carry their position", prop.ForAll(
		func(n int) bool {
			var branches []*ast.IfBranchNode
			for i := range n {
				branches = append(branches, branch("c"+strconv.Itoa(i), elem("p", nil)))
			}
			code, _ := gen(ifNode(branches...), Options{})
			for i := range n {
				if !strings.Contains(code, "{ key: "+strconv.Itoa(i)+" }") {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 8),
	))

	properties.Property("generation is deterministic", prop.ForAll(
		func(conds []string) bool {
			if len(conds) == 0 {
				return true
			}
			build := func() *ast.RootNode {
				var branches []*ast.IfBranchNode
				for _, c := range conds {
					branches = append(branches, branch(c, comp("my-comp", nil)))
				}
				return ast.NewRoot(ifNode(branches...), forNode("items", "x", elem("li", props(on("click", "x.go")), interp("x"))))
			}
			a := Generate(build(), Options{CacheHandlers: true})
			b := Generate(build(), Options{CacheHandlers: true})
			if a.Code != b.Code || len(a.Helpers) != len(b.Helpers) {
				return false
			}
			for i := range a.Helpers {
				if a.Helpers[i] != b.Helpers[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}
