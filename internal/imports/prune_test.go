package imports_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegraft/codegraft/internal/imports"
)

func TestPruneUnused_PartialNamedSurvival(t *testing.T) {
	t.Parallel()

	decls := []imports.Declaration{
		{Module: "react", Named: []string{"useState", "useEffect"}},
	}

	body := "const [count, setCount] = useState(0);\n"

	pruned := imports.PruneUnused(decls, body)

	assert.Equal(t, []imports.Declaration{
		{Module: "react", Named: []string{"useState"}},
	}, pruned)
}

func TestPruneUnused_FullyUnusedDropped(t *testing.T) {
	t.Parallel()

	decls := []imports.Declaration{
		{Module: "axios", Default: "axios"},
		{Module: "./utils", Named: []string{"formatDate"}},
	}

	pruned := imports.PruneUnused(decls, "const x = formatDate(now);\n")

	assert.Equal(t, []imports.Declaration{
		{Module: "./utils", Named: []string{"formatDate"}},
	}, pruned)
}

func TestPruneUnused_SideEffectAlwaysSurvives(t *testing.T) {
	t.Parallel()

	decls := []imports.Declaration{{Module: "./theme.css", SideEffect: true}}

	pruned := imports.PruneUnused(decls, "const x = 1;\n")

	assert.Equal(t, decls, pruned)
}

func TestPruneUnused_UnusedDefaultCleared(t *testing.T) {
	t.Parallel()

	decls := []imports.Declaration{
		{Module: "react", Default: "React", Named: []string{"useState"}},
	}

	pruned := imports.PruneUnused(decls, "const [n, setN] = useState(0);\n")

	assert.Equal(t, []imports.Declaration{
		{Module: "react", Named: []string{"useState"}},
	}, pruned)
}

func TestPruneUnused_WholeWordMatchOnly(t *testing.T) {
	t.Parallel()

	decls := []imports.Declaration{{Module: "./ui", Named: []string{"Button"}}}

	// ButtonGroup must not count as a use of Button.
	pruned := imports.PruneUnused(decls, "return <ButtonGroup />;\n")

	assert.Empty(t, pruned)
}

func TestPruneUnused_AliasUsesLocalName(t *testing.T) {
	t.Parallel()

	decls := []imports.Declaration{{Module: "./ui", Named: []string{"Button as Btn"}}}

	kept := imports.PruneUnused(decls, "return <Btn />;\n")
	require.Len(t, kept, 1)
	assert.Equal(t, []string{"Button as Btn"}, kept[0].Named)

	// The exported name alone is not the bound identifier.
	dropped := imports.PruneUnused(decls, "return <Button />;\n")
	assert.Empty(t, dropped)
}

func TestPruneUnused_ImportLinesExcludedFromSearch(t *testing.T) {
	t.Parallel()

	decls := []imports.Declaration{{Module: "react", Named: []string{"useState"}}}

	// The binding appears only on an import line inside the body text.
	body := "import { useState } from 'react';\nconst x = 1;\n"

	assert.Empty(t, imports.PruneUnused(decls, body))
}

func TestPruneUnused_InputUnmodified(t *testing.T) {
	t.Parallel()

	decls := []imports.Declaration{
		{Module: "react", Default: "React", Named: []string{"useState", "useEffect"}},
	}

	_ = imports.PruneUnused(decls, "useState();\n")

	assert.Equal(t, []string{"useState", "useEffect"}, decls[0].Named)
	assert.Equal(t, "React", decls[0].Default)
}

func TestInferFrameworkNeeds_Primitives(t *testing.T) {
	t.Parallel()

	eng := imports.NewEngine("react")

	body := "const [n, setN] = useState(0);\nconst ref = useRef(null);\n"

	decl, ok := eng.InferFrameworkNeeds(body)
	require.True(t, ok)

	assert.Equal(t, "react", decl.Module)
	assert.Equal(t, "React", decl.Default)
	assert.Equal(t, []string{"useState", "useRef"}, decl.Named)
}

func TestInferFrameworkNeeds_MarkupOnly(t *testing.T) {
	t.Parallel()

	eng := imports.NewEngine("react")

	decl, ok := eng.InferFrameworkNeeds("return <div className=\"card\">hello</div>;\n")
	require.True(t, ok)

	assert.Equal(t, "react", decl.Module)
	assert.Equal(t, "React", decl.Default)
	assert.Empty(t, decl.Named)
}

func TestInferFrameworkNeeds_NoSignal(t *testing.T) {
	t.Parallel()

	eng := imports.NewEngine("react")

	_, ok := eng.InferFrameworkNeeds("const add = (a, b) => a + b;\n")

	assert.False(t, ok)
}

func TestInferFrameworkNeeds_ImportLineIsNotASignal(t *testing.T) {
	t.Parallel()

	eng := imports.NewEngine("react")

	_, ok := eng.InferFrameworkNeeds("import { useState } from 'react';\n")

	assert.False(t, ok)
}

func TestInferFrameworkNeeds_CustomFramework(t *testing.T) {
	t.Parallel()

	eng := imports.NewEngine("preact")

	decl, ok := eng.InferFrameworkNeeds("return <span>ok</span>;\n")
	require.True(t, ok)

	assert.Equal(t, "preact", decl.Module)
	assert.Equal(t, "Preact", decl.Default)
}
