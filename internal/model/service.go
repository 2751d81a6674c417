package model

type ClinicService struct {
	ID     int64   `db:"id" json:"id"`
	Name   string  `db:"name" json:"name"`
	TypeID int64   `db:"type_id" json:"type_id"`
	Price  float64 `db:"price" json:"price"`
	Status string  `db:"status" json:"status"`
}

type ServiceType struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type ClinicServiceView struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	TypeName string  `json:"type_name"`
	Price    float64 `json:"price"`
	Status   string  `json:"status"`
}
