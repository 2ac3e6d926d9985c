// Package storage provides database models and repository functions.
package storage

// Action represents the recommended action for a symbol.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionHold Action = "hold"
	ActionSell Action = "sell"
)

// Strength represents how strongly the model holds its recommendation.
type Strength string

const (
	StrengthHigh   Strength = "high"
	StrengthMedium Strength = "medium"
	StrengthLow    Strength = "low"
)

// Advice is one validated, persisted recommendation. Rows are append-only
// and immutable once written; a new recommendation for the same symbol is a
// new row.
type Advice struct {
	ID             uint     `gorm:"primaryKey" json:"-"`
	Symbol         string   `gorm:"size:20;not null" json:"symbol"`
	AdviceAction   string   `gorm:"size:10;not null" json:"advice_action"`
	AdviceStrength string   `gorm:"size:10;not null" json:"advice_strength"`
	Reason         string   `gorm:"type:text" json:"reason"`
	PredictedAt    int64    `gorm:"not null" json:"predicted_at"`
	CreatedAt      int64    `gorm:"autoCreateTime" json:"created_at"`
	Price          *float64 `json:"price,omitempty"`
}

// TableName pins the table the upstream pipeline and dashboard agreed on.
func (Advice) TableName() string {
	return "advises"
}
