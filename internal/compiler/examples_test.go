package compiler

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/sfcc/internal/codegen"
	"github.com/conneroisu/sfcc/internal/fixture"
	"github.com/conneroisu/sfcc/internal/logging"
)

var exampleMarkers = map[string][]string{
	"todo-list.tmpl.yml":  {"renderList(", "KEYED_FRAGMENT", "$setup[\"TodoItem\"]"},
	"login-form.tmpl.yml": {"withModifiers(", "withKeys(", "createCommentVNode(", "onKeyupOnce"},
	"pagination.tmpl.yml": {"STABLE_FRAGMENT", `resolveDirective("tooltip")`, "renderSlot("},
	"icon.tmpl.yml":       {"toHandlerKey(eventName)", `"circle"`},
}

func TestExamples(t *testing.T) {
	files, err := fixture.Discover([]string{filepath.Join("..", "..", "examples")}, fixture.DefaultPatterns)
	require.NoError(t, err)
	require.Len(t, files, len(exampleMarkers))

	c := New(codegen.DefaultOptions(), logging.NewNopLogger(), nil)
	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			res, err := c.CompileFile(context.Background(), file)
			require.NoError(t, err)
			assert.Empty(t, res.Diagnostics)
			assert.Contains(t, res.Code, "export function render(_ctx, _cache)")
			for _, marker := range exampleMarkers[filepath.Base(file)] {
				assert.Contains(t, res.Code, marker)
			}

			// Re-encoding the tree must not change what it compiles to.
			fx, err := fixture.Load(file)
			require.NoError(t, err)
			data, err := fixture.Marshal(fx.Root, fx.Bindings)
			require.NoError(t, err)
			again, err := fixture.Parse(file, data)
			require.NoError(t, err)
			res2, err := c.CompileFixture(context.Background(), again)
			require.NoError(t, err)
			assert.Equal(t, res.Code, res2.Code)
		})
	}
}
