package dom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidroman0O/firm-theme/dom"
)

func themeFilter() dom.ObserveOptions {
	return dom.ObserveOptions{
		Attributes:      true,
		AttributeFilter: []string{dom.AttrDataTheme, dom.AttrStyle},
	}
}

func TestObserverReceivesFilteredBatch(t *testing.T) {
	doc := dom.NewMemory()

	var batches [][]dom.MutationRecord
	observer := doc.NewMutationObserver(func(records []dom.MutationRecord) {
		batches = append(batches, records)
	})
	require.NoError(t, observer.Observe(doc.DocumentElement(), themeFilter()))

	doc.DocumentElement().SetAttribute(dom.AttrDataTheme, "dark")
	doc.DocumentElement().SetAttribute(dom.AttrClass, "ignored")
	doc.DocumentElement().SetAttribute(dom.AttrStyle, "color-scheme: dark")
	assert.Empty(t, batches, "records are delivered on flush only")

	doc.Flush()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 2)
	assert.Equal(t, dom.AttrDataTheme, batches[0][0].AttributeName)
	assert.Equal(t, dom.NodeHTML, batches[0][0].Target.NodeName())
	assert.Equal(t, dom.AttrStyle, batches[0][1].AttributeName)
	assert.False(t, doc.Pending())
}

func TestObserverDisconnectDropsPending(t *testing.T) {
	doc := dom.NewMemory()

	calls := 0
	observer := doc.NewMutationObserver(func([]dom.MutationRecord) { calls++ })
	require.NoError(t, observer.Observe(doc.Body(), themeFilter()))

	doc.Body().SetAttribute(dom.AttrDataTheme, "dark")
	observer.Disconnect()
	doc.Body().SetAttribute(dom.AttrDataTheme, "light")
	doc.Flush()

	assert.Zero(t, calls)
}

func TestRemoveAttributeIsRecorded(t *testing.T) {
	doc := dom.NewMemory()
	doc.DocumentElement().SetAttribute(dom.AttrDataTheme, "light")

	var records []dom.MutationRecord
	observer := doc.NewMutationObserver(func(batch []dom.MutationRecord) {
		records = append(records, batch...)
	})
	require.NoError(t, observer.Observe(doc.DocumentElement(), themeFilter()))

	doc.DocumentElement().RemoveAttribute(dom.AttrDataTheme)
	doc.DocumentElement().RemoveAttribute(dom.AttrDataTheme)
	doc.Flush()

	require.Len(t, records, 1)
	assert.Equal(t, "light", records[0].OldValue)
	_, ok := doc.DocumentElement().Attribute(dom.AttrDataTheme)
	assert.False(t, ok)
}

func TestObserveRejectsForeignNodeAndEmptyOptions(t *testing.T) {
	doc := dom.NewMemory()
	other := dom.NewMemory()
	observer := doc.NewMutationObserver(func([]dom.MutationRecord) {})

	assert.ErrorIs(t, observer.Observe(other.Body(), themeFilter()), dom.ErrForeignNode)
	assert.ErrorIs(t, observer.Observe(doc.Body(), dom.ObserveOptions{}), dom.ErrNothingObserved)
}

func TestComputedStyleLayers(t *testing.T) {
	doc := dom.NewMemory()
	root := doc.DocumentElement()

	doc.SetRootProperty("--theme-colors-primary", "#0072f5")
	doc.SetRootProperty("--theme-space-sm", "4px")
	doc.AddClassRule("ocean-theme", map[string]string{"--theme-colors-primary": "#005f73"})

	assert.Equal(t, "#0072f5", doc.ComputedStyle(root).PropertyValue("--theme-colors-primary"))

	root.SetAttribute(dom.AttrClass, "app ocean-theme")
	assert.Equal(t, "#005f73", doc.ComputedStyle(root).PropertyValue("--theme-colors-primary"))

	root.SetAttribute(dom.AttrStyle, "--theme-space-sm: 6px; color-scheme: dark")
	style := doc.ComputedStyle(root)
	assert.Equal(t, "6px", style.PropertyValue("--theme-space-sm"))
	assert.Equal(t, "dark", style.PropertyValue("color-scheme"))

	assert.Equal(t, "6px", doc.ComputedStyle(doc.Body()).PropertyValue("--theme-space-sm"), "body inherits from root")
}

func TestDetachBody(t *testing.T) {
	doc := dom.NewMemory()
	doc.DetachBody()
	assert.Nil(t, doc.Body())
	assert.NotNil(t, doc.DocumentElement())
}

func TestParseDeclarations(t *testing.T) {
	got := dom.ParseDeclarations(" color-scheme : dark ;; broken; --x: a:b ")
	assert.Equal(t, map[string]string{
		"color-scheme": "dark",
		"--x":          "a:b",
	}, got)
}
