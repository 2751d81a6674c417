package model

type Medicine struct {
	ID       int64   `db:"id" json:"id"`
	Code     string  `db:"code" json:"code"`
	Name     string  `db:"name" json:"name"`
	GroupID  int64   `db:"group_id" json:"group_id"`
	Strength string  `db:"strength" json:"strength"`
	Unit     string  `db:"unit" json:"unit"`
	Price    float64 `db:"price" json:"price"`
	Stock    int     `db:"stock" json:"stock"`
	Status   string  `db:"status" json:"status"`
}

type MedicineGroup struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// MedicineView joins a medicine with its group name for pick lists.
type MedicineView struct {
	ID        int64   `json:"id"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	GroupName string  `json:"group_name"`
	GroupID   int64   `json:"group_id"`
	Strength  string  `json:"strength"`
	Unit      string  `json:"unit"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	Status    string  `json:"status"`
}
