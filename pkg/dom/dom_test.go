package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildForm(d *Document) (scope, input *Element) {
	form := d.Body.AppendChild(d.CreateElement("form"))
	scope = form.AppendChild(d.CreateElement("div")).AddClass("js-crop-scope")
	label := scope.AppendChild(d.CreateElement("label"))
	input = label.AppendChild(d.CreateElement("input")).SetAttr("type", "file")
	return scope, input
}

func TestElement_Attributes(t *testing.T) {
	d := NewDocument()
	e := d.CreateElement("div")

	_, ok := e.Attr("crop-size")
	assert.False(t, ok)

	e.SetAttr("crop-size", "400x400")
	v, ok := e.Attr("crop-size")
	assert.True(t, ok)
	assert.Equal(t, "400x400", v)

	e.SetAttr("class", "a b")
	assert.True(t, e.HasClass("a"))
	e.AddClass("b", "c")
	assert.True(t, e.HasClass("c"))
	v, _ = e.Attr("class")
	assert.Equal(t, "a b c", v)

	e.RemoveAttr("class")
	assert.False(t, e.HasClass("a"))
}

func TestElement_TreeQueries(t *testing.T) {
	d := NewDocument()
	scope, input := buildForm(d)

	assert.Equal(t, scope, input.Closest(ByClass("js-crop-scope")))
	assert.Equal(t, input, input.Closest(FileInput()), "closest is inclusive")
	assert.Nil(t, input.Closest(ByClass("missing")))
	assert.Equal(t, input, d.Body.QuerySelector(FileInput()))
	assert.Len(t, d.QuerySelectorAll(ByTag("input")), 1)

	input.SetAttr("id", "avatar")
	assert.Equal(t, input, d.GetElementByID("avatar"))

	other := d.Body.AppendChild(d.CreateElement("section"))
	other.AppendChild(input)
	assert.Nil(t, input.Closest(ByClass("js-crop-scope")), "re-parenting detaches from the old scope")
	assert.Empty(t, scope.QuerySelectorAll(FileInput()))
}

func TestElement_DispatchBubbles(t *testing.T) {
	d := NewDocument()
	scope, input := buildForm(d)

	var order []string
	input.AddEventListener(EventChange, func(ev *Event) { order = append(order, "input") })
	scope.AddEventListener(EventChange, func(ev *Event) { order = append(order, "scope") })
	remove := d.AddEventListener(EventChange, func(ev *Event) {
		order = append(order, "document")
		assert.Equal(t, input, ev.Target)
		assert.Nil(t, ev.CurrentTarget)
	})

	input.Change()
	assert.Equal(t, []string{"input", "scope", "document"}, order)

	order = nil
	remove()
	input.Change()
	assert.Equal(t, []string{"input", "scope"}, order)

	order = nil
	input.AddEventListener(EventChange, func(ev *Event) { ev.StopPropagation() })
	input.Change()
	assert.Equal(t, []string{"input"}, order)
}

func TestElement_DetachedDoesNotReachDocument(t *testing.T) {
	d := NewDocument()
	e := d.CreateElement("input")
	fired := false
	d.AddEventListener(EventClick, func(*Event) { fired = true })
	e.Click()
	assert.False(t, fired)
}

func TestElement_Dialog(t *testing.T) {
	d := NewDocument()
	dlg := d.Body.AppendChild(d.CreateElement("dialog"))

	require.NoError(t, dlg.ShowModal())
	assert.True(t, dlg.Open())
	assert.True(t, dlg.Modal())
	require.NoError(t, dlg.ShowModal(), "reopening an open modal is a no-op")

	dlg.Close()
	assert.False(t, dlg.Open())
	assert.False(t, dlg.Modal())

	d.NativeModal = false
	assert.ErrorIs(t, dlg.ShowModal(), ErrModalUnsupported)
	assert.False(t, dlg.Open())
}

func TestDocument_ObjectURLs(t *testing.T) {
	d := NewDocument()
	f := &File{Name: "photo.png", Type: "image/png", Data: []byte{1, 2, 3}}

	u1 := d.CreateObjectURL(f)
	u2 := d.CreateObjectURL(f)
	assert.NotEqual(t, u1, u2)
	assert.Equal(t, 2, d.LiveObjectURLs())

	got, ok := d.ResolveObjectURL(u1)
	assert.True(t, ok)
	assert.Equal(t, f, got)

	d.RevokeObjectURL(u1)
	d.RevokeObjectURL(u1)
	assert.Equal(t, 1, d.LiveObjectURLs())
	_, ok = d.ResolveObjectURL(u1)
	assert.False(t, ok)
}

func TestElement_Rotation(t *testing.T) {
	d := NewDocument()
	img := d.CreateElement("img")
	img.SetRotation(-5)
	assert.Equal(t, -5.0, img.Rotation())
	style, _ := img.Attr("style")
	assert.Equal(t, "transform: rotate(-5deg)", style)
}
