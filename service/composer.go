package service

import "idcard-sheet/models"

// ComposePrintSurface lays out the print sheet in two passes over the fixed positions:
// fronts first, then backs. A position without a card keeps an empty placeholder in both rows.
// When mirrored, the whole surface is flipped horizontally as one unit.
func ComposePrintSurface(fronts []models.FrontCard, back models.BackCard, mirrored bool) models.PrintSurface {
	surface := models.PrintSurface{Mirrored: mirrored}

	for pos := 0; pos < models.SheetCapacity; pos++ {
		frontSlot := models.PrintSlot{
			Position:  pos,
			Placement: placeSlot(models.RowFront, pos, mirrored),
		}
		if pos < len(fronts) {
			front := fronts[pos]
			frontSlot.Occupied = true
			frontSlot.Front = &front
		}
		surface.Fronts[pos] = frontSlot

		backSlot := models.PrintSlot{
			Position:  pos,
			Placement: placeSlot(models.RowBack, pos, mirrored),
		}
		// The back face carries no record data, it only follows occupancy
		if pos < len(fronts) {
			b := back
			backSlot.Occupied = true
			backSlot.Back = &b
		}
		surface.Backs[pos] = backSlot
	}

	return surface
}

// placeSlot returns the sheet placement of a position. Flipping the sheet reverses the
// column order and mirrors every card in place.
func placeSlot(row, pos int, mirrored bool) models.Placement {
	if !mirrored {
		return models.Placement{Row: row, Column: pos}
	}
	return models.Placement{Row: row, Column: models.SheetCapacity - 1 - pos, Flipped: true}
}

// ComposePreviewSurface lists the cards in direct order for the on-screen preview.
// The mirror flag only becomes a cosmetic hint here; order and content are untouched.
func ComposePreviewSurface(fronts []models.FrontCard, back models.BackCard, mirrored bool) models.PreviewSurface {
	preview := models.PreviewSurface{
		Cards:    make([]models.PreviewCard, 0, len(fronts)),
		Cosmetic: mirrored,
	}
	for pos, front := range fronts {
		preview.Cards = append(preview.Cards, models.PreviewCard{
			Position: pos,
			Front:    front,
			Back:     back,
		})
	}
	return preview
}
