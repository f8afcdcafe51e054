package game

// CardView is one card as the browser may see it. Face-down cards carry only
// their unique id, so the layout cannot be read off the wire.
type CardView struct {
	UniqueID int    `json:"uniqueId"`
	State    Face   `json:"state"`
	PairID   *int   `json:"pairId,omitempty"`
	Name     string `json:"name,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Color    string `json:"color,omitempty"`
}

// View is the full board plus the score ledger.
type View struct {
	ID         string     `json:"id"`
	Phase      Phase      `json:"phase"`
	Cards      []CardView `json:"cards"`
	Moves      int        `json:"moves"`
	Elapsed    int        `json:"elapsed"`
	Clock      string     `json:"clock"`
	Score      int        `json:"score"`
	Combo      int        `json:"combo"`
	ComboLabel string     `json:"comboLabel"`
	Banner     string     `json:"banner,omitempty"`
	Matched    int        `json:"matched"`
	CanFlip    bool       `json:"canFlip"`
	Playing    bool       `json:"playing"`
	Won        bool       `json:"won"`
}

// BuildView snapshots g.
func BuildView(g *Game) View {
	cards := make([]CardView, 0, len(g.deck))
	for _, c := range g.deck {
		cv := CardView{UniqueID: c.UniqueID, State: g.Face(c.UniqueID)}
		if cv.State != FaceDown {
			pair := c.PairID
			cv.PairID = &pair
			cv.Name, cv.Icon, cv.Color = c.Name, c.Icon, c.Color
		}
		cards = append(cards, cv)
	}
	return View{
		ID:         g.ID,
		Phase:      g.Phase(),
		Cards:      cards,
		Moves:      g.Moves,
		Elapsed:    g.Elapsed,
		Clock:      FormatTime(g.Elapsed),
		Score:      g.Score,
		Combo:      g.Combo,
		ComboLabel: ComboLabel(g.Combo),
		Banner:     BannerText(g.banner),
		Matched:    len(g.matched),
		CanFlip:    g.CanFlip,
		Playing:    g.Playing,
		Won:        g.Won,
	}
}
