package crop

import (
	"errors"

	"github.com/ouaf/widgets/pkg/dom"
	"github.com/ouaf/widgets/util/log"
)

// ensureModal returns the crop dialog, building it on first use. A dialog
// already present in the page under ModalID is reused and wired once.
func (p *Pipeline) ensureModal() *dom.Element {
	if p.modal != nil && p.modal.Attached() {
		return p.modal
	}

	dlg := p.doc.GetElementByID(ModalID)
	if dlg == nil {
		dlg = p.buildModal()
		p.doc.Body.AppendChild(dlg)
	}
	dlg.AddEventListener(dom.EventClick, func(ev *dom.Event) {
		switch {
		case ev.Target.HasAttr(CloseAttr):
			p.Close()
		case ev.Target.Closest(dom.ByID(ConfirmID)) != nil:
			p.Confirm()
		}
	})
	p.modal = dlg
	return dlg
}

func (p *Pipeline) buildModal() *dom.Element {
	d := p.doc
	dlg := d.CreateElement("dialog").SetAttr("id", ModalID)

	card := dlg.AppendChild(d.CreateElement("div")).AddClass("account__card")
	head := card.AppendChild(d.CreateElement("header")).AddClass("account__head")
	head.AppendChild(d.CreateElement("h2")).AddClass("account__title").SetAttr("aria-label", "Crop image")
	head.AppendChild(d.CreateElement("p")).AddClass("account__meta").SetAttr("aria-label", "Zoom or move, then confirm.")

	body := card.AppendChild(d.CreateElement("div")).AddClass("account__body")
	body.AppendChild(d.CreateElement("img")).SetAttr("id", TargetID).SetAttr("alt", "Image to crop")

	foot := body.AppendChild(d.CreateElement("footer")).AddClass("account__foot")
	foot.AppendChild(d.CreateElement("button")).SetAttr("type", "button").SetAttr(CloseAttr, "").AddClass("btn", "btn--ghost")
	foot.AppendChild(d.CreateElement("button")).SetAttr("type", "button").SetAttr("id", ConfirmID).AddClass("btn", "btn--primary")
	return dlg
}

// showModal opens the dialog modally, or just marks it open when the page has
// no native modal support.
func showModal(dlg *dom.Element) {
	if err := dlg.ShowModal(); err != nil {
		if !errors.Is(err, dom.ErrModalUnsupported) {
			log.Printf("crop: showing modal: %v", err)
		}
		dlg.SetAttr("open", "open")
	}
}

// modalTarget returns the image element the decoded file is shown in.
func (p *Pipeline) modalTarget(dlg *dom.Element) *dom.Element {
	if img := dlg.QuerySelector(dom.ByID(TargetID)); img != nil {
		return img
	}
	return dlg.AppendChild(p.doc.CreateElement("img").SetAttr("id", TargetID))
}
