package models

// Snapshot все состояние пользователя, единица сохранения и загрузки
type Snapshot struct {
	Income       *Income       `json:"income,omitempty"`
	Ratios       Ratios        `json:"ratios"`
	Expenses     []Expense     `json:"expenses"`
	Transactions []Transaction `json:"transactions"`
	Goal         *SavingsGoal  `json:"goal,omitempty"`
}

// Profile доход и доли, хранится одной строкой
type Profile struct {
	Income *Income `json:"income,omitempty"`
	Ratios Ratios  `json:"ratios"`
}
