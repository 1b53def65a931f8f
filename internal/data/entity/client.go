package entity

// Client is a customer of the rental service. Identity comes from the auth
// token; this record carries the contact and license details the rental desk
// needs.
type Client struct {
	Base
	FullName      string  `db:"full_name"`
	Email         string  `db:"email"`
	Phone         *string `db:"phone"`
	DriverLicense string  `db:"driver_license"`
	IsActive      bool    `db:"is_active"`
}
