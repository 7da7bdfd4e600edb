package service

import (
	"fmt"

	"idcard-sheet/fittext"
	"idcard-sheet/models"
)

// Size ranges of the auto-fit text on a card, in CSS px
var (
	headerBounds      = fittext.NewBounds(12, 16)
	detailBounds      = fittext.NewBounds(6, 9)
	footerBounds      = fittext.NewBounds(10, 14)
	backNameBounds    = fittext.NewBounds(8, 11)
	backAddressBounds = fittext.NewBounds(5, 7)
	backPhoneBounds   = fittext.NewBounds(9, 12)
)

// cardFonts holds one measurer per text style on the card
type cardFonts struct {
	header      fittext.Measurer
	detail      fittext.Measurer
	footer      fittext.Measurer
	backName    fittext.Measurer
	backAddress fittext.Measurer
	backPhone   fittext.Measurer
	closers     []*fittext.FaceMeasurer
}

func loadCardFonts() (*cardFonts, error) {
	boldItalic, err := fittext.NewBundledMeasurer(fittext.FaceBoldItalic)
	if err != nil {
		return nil, fmt.Errorf("failed to load header font: %w", err)
	}
	bold, err := fittext.NewBundledMeasurer(fittext.FaceBold)
	if err != nil {
		return nil, fmt.Errorf("failed to load body font: %w", err)
	}

	return &cardFonts{
		header:      boldItalic,
		detail:      fittext.Upper(bold),
		footer:      fittext.Tracked(bold, 0.2),
		backName:    fittext.Upper(bold),
		backAddress: bold,
		backPhone:   fittext.Tracked(bold, 0.1),
		closers:     []*fittext.FaceMeasurer{boldItalic, bold},
	}, nil
}

func (f *cardFonts) Close() {
	for _, m := range f.closers {
		m.Close()
	}
}

// cardLayout holds one container per text slot; all cards share the same geometry
type cardLayout struct {
	containers map[models.TextSlot]*fittext.Container
}

func newCardLayout(g models.CardGeometry) *cardLayout {
	l := &cardLayout{containers: make(map[models.TextSlot]*fittext.Container, len(models.TextSlots))}
	for slot, width := range g.SlotWidths() {
		l.containers[slot] = fittext.NewContainer(width)
	}
	return l
}

// resize notifies every mounted box of the new slot widths
func (l *cardLayout) resize(g models.CardGeometry) {
	for slot, width := range g.SlotWidths() {
		l.containers[slot].Resize(width)
	}
}

func (l *cardLayout) container(slot models.TextSlot) *fittext.Container {
	return l.containers[slot]
}

// observers counts the boxes currently mounted on the layout
func (l *cardLayout) observers() int {
	n := 0
	for _, c := range l.containers {
		n += c.Observers()
	}
	return n
}

func mountBox(m fittext.Measurer, content string, bounds fittext.Bounds, c *fittext.Container) *fittext.Box {
	box := fittext.NewBox(m, content, bounds)
	box.Mount(c)
	return box
}

// frontView is the mounted front face of the card at one position
type frontView struct {
	header *fittext.Box
	name   *fittext.Box
	father *fittext.Box
	footer *fittext.Box
	record models.StudentRecord
}

func newFrontView(fonts *cardFonts, layout *cardLayout, school models.SchoolInfo, record models.StudentRecord) *frontView {
	return &frontView{
		header: mountBox(fonts.header, school.Name, headerBounds, layout.container(models.SlotHeader)),
		name:   mountBox(fonts.detail, record.Name, detailBounds, layout.container(models.SlotDetailValue)),
		father: mountBox(fonts.detail, record.FatherName, detailBounds, layout.container(models.SlotDetailValue)),
		footer: mountBox(fonts.footer, school.ShortName, footerBounds, layout.container(models.SlotFooter)),
		record: record,
	}
}

// update points the view at the record now occupying its position
func (v *frontView) update(record models.StudentRecord) {
	v.record = record
	v.name.SetContent(record.Name)
	v.father.SetContent(record.FatherName)
}

func (v *frontView) unmount() {
	v.header.Unmount()
	v.name.Unmount()
	v.father.Unmount()
	v.footer.Unmount()
}

func (v *frontView) card() models.FrontCard {
	return models.FrontCard{
		Student:    v.record,
		HeaderSize: v.header.Size(),
		NameSize:   v.name.Size(),
		FatherSize: v.father.Size(),
		FooterSize: v.footer.Size(),
	}
}

// backView is the mounted static back template at one position
type backView struct {
	schoolName *fittext.Box
	address    *fittext.Box
	phone      *fittext.Box
}

func newBackView(fonts *cardFonts, layout *cardLayout, school models.SchoolInfo) *backView {
	return &backView{
		schoolName: mountBox(fonts.backName, school.Name, backNameBounds, layout.container(models.SlotBackName)),
		address:    mountBox(fonts.backAddress, school.Address, backAddressBounds, layout.container(models.SlotBackAddress)),
		phone:      mountBox(fonts.backPhone, school.Phone, backPhoneBounds, layout.container(models.SlotBackPhone)),
	}
}

func (v *backView) unmount() {
	v.schoolName.Unmount()
	v.address.Unmount()
	v.phone.Unmount()
}

func (v *backView) card() models.BackCard {
	return models.BackCard{
		SchoolNameSize: v.schoolName.Size(),
		AddressSize:    v.address.Size(),
		PhoneSize:      v.phone.Size(),
	}
}
