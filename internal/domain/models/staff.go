package models

type StaffRole struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Staff struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	RoleID   int64  `json:"role_id"`
	RoleName string `json:"role_name,omitempty"`
}

// BusStaff assigns one staff member per role to a bus.
type BusStaff struct {
	BusID     int64  `json:"bus_id"`
	StaffID   int64  `json:"staff_id"`
	RoleID    int64  `json:"role_id"`
	StaffName string `json:"staff_name,omitempty"`
	RoleName  string `json:"role_name,omitempty"`
}
