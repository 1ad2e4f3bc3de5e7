package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff_IdenticalTexts(t *testing.T) {
	t.Parallel()

	assert.Empty(t, NewRenderer(Config{}).Diff("a\nb\n", "a\nb\n"))
}

func TestDiff_ChangedLine(t *testing.T) {
	t.Parallel()

	got := NewRenderer(Config{}).Diff("a\nb\nc\n", "a\nB\nc\n")

	assert.Equal(t, " a\n-b\n+B\n c\n", got)
}

func TestDiff_AddedLine(t *testing.T) {
	t.Parallel()

	got := NewRenderer(Config{}).Diff("a\n", "a\nb\n")

	assert.Equal(t, " a\n+b\n", got)
}

func TestDiff_RemovedLine(t *testing.T) {
	t.Parallel()

	got := NewRenderer(Config{}).Diff("a\nb\n", "a\n")

	assert.Equal(t, " a\n-b\n", got)
}

func TestDiff_ImportBlockRewrite(t *testing.T) {
	t.Parallel()

	original := "import axios from 'axios';\n\nconst x = 1;\n"
	modified := "import React from 'react';\n\nimport axios from 'axios';\n\nconst x = 1;\n"

	got := NewRenderer(Config{}).Diff(original, modified)

	assert.Contains(t, got, "+import React from 'react';")
	assert.Contains(t, got, " const x = 1;")
	assert.NotContains(t, got, "-const x = 1;")
}
