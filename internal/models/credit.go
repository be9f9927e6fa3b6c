package models

// Credit represents the stored credit bureau summary
type Credit struct {
	Score  int    `json:"score"`
	Rating string `json:"rating"`
}
