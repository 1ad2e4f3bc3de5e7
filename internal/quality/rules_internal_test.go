package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanOpenTags_BraceAwareTermination(t *testing.T) {
	t.Parallel()

	tags := scanOpenTags(`<div onClick={() => fire()}>x</div>`)

	require.Len(t, tags, 1)
	assert.Equal(t, "div", tags[0].name)
	assert.Equal(t, `<div onClick={() => fire()}>`, tags[0].text)
	assert.Equal(t, 0, tags[0].start)
}

func TestScanOpenTags_SelfClosing(t *testing.T) {
	t.Parallel()

	tags := scanOpenTags(`<img src="a.png" />`)

	require.Len(t, tags, 1)
	assert.Equal(t, "img", tags[0].name)
	assert.Equal(t, `<img src="a.png" />`, tags[0].text)
}

func TestScanOpenTags_SkipsCloseTags(t *testing.T) {
	t.Parallel()

	assert.Empty(t, scanOpenTags(`</div>`))
}

func TestScanOpenTags_UnterminatedSkipped(t *testing.T) {
	t.Parallel()

	assert.Empty(t, scanOpenTags(`<img src="x`))
}

func TestScanOpenTags_MemberComponentName(t *testing.T) {
	t.Parallel()

	tags := scanOpenTags(`<Menu.Item value="a">`)

	require.Len(t, tags, 1)
	assert.Equal(t, "Menu.Item", tags[0].name)
}

func TestScanOpenTags_MultipleTags(t *testing.T) {
	t.Parallel()

	tags := scanOpenTags(`<main><img src="a.png"><p>hi</p></main>`)

	require.Len(t, tags, 3)
	assert.Equal(t, "main", tags[0].name)
	assert.Equal(t, "img", tags[1].name)
	assert.Equal(t, "p", tags[2].name)
}

func TestInsertAttribute_ClosingForms(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `<img src="a" alt="">`, insertAttribute(`<img src="a">`, `alt=""`))
	assert.Equal(t, `<img src="a" alt="" />`, insertAttribute(`<img src="a"/>`, `alt=""`))
	assert.Equal(t, `<img src="a" alt="" />`, insertAttribute(`<img src="a" />`, `alt=""`))
}
