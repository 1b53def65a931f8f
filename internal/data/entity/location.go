package entity

type Location struct {
	BaseNoDelete
	Name    string `db:"name"`
	Address string `db:"address"`
	City    string `db:"city"`
}
