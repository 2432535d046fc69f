package strategy

import "rotation_bot/internal/models"

// CurrentLegs выбирает управляемую позицию на каждую ногу: самая крупная по размеру,
// при равенстве: символ, меньший лексикографически. Порядок ответа биржи не влияет.
func CurrentLegs(positions []models.Position) models.CurrentLegs {
	var legs models.CurrentLegs
	for i := range positions {
		p := positions[i]
		if !p.Open() {
			continue
		}
		switch p.Side {
		case models.PosLong:
			if better(&p, legs.Long) {
				legs.Long = &p
			}
		case models.PosShort:
			if better(&p, legs.Short) {
				legs.Short = &p
			}
		}
	}
	return legs
}

func better(p, cur *models.Position) bool {
	if cur == nil {
		return true
	}
	if c := p.Size.Cmp(cur.Size); c != 0 {
		return c > 0
	}
	return p.Symbol < cur.Symbol
}
