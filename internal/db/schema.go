package db

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	username VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(20) NOT NULL DEFAULT 'passenger',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_username (username),
	UNIQUE KEY uniq_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS buses (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	bus_number VARCHAR(50) NOT NULL,
	model VARCHAR(100) NOT NULL DEFAULT '',
	capacity INT NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'active',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_bus_number (bus_number)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS fare_policies (
	bus_id BIGINT PRIMARY KEY,
	base_fare DECIMAL(10,2) NOT NULL DEFAULT 0,
	per_km_rate DECIMAL(10,2) NOT NULL DEFAULT 0,
	per_stop_rate DECIMAL(10,2) NOT NULL DEFAULT 0,
	CONSTRAINT fk_fare_bus FOREIGN KEY (bus_id) REFERENCES buses(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS routes (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	source VARCHAR(255) NOT NULL,
	destination VARCHAR(255) NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS stops (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	route_id BIGINT NOT NULL,
	name VARCHAR(255) NOT NULL,
	stop_order INT NOT NULL,
	UNIQUE KEY uniq_route_order (route_id, stop_order),
	CONSTRAINT fk_stop_route FOREIGN KEY (route_id) REFERENCES routes(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS distance_legs (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	route_id BIGINT NOT NULL,
	from_stop VARCHAR(255) NOT NULL,
	to_stop VARCHAR(255) NOT NULL,
	distance_km DECIMAL(10,2) NOT NULL,
	KEY idx_leg_route (route_id),
	CONSTRAINT fk_leg_route FOREIGN KEY (route_id) REFERENCES routes(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS schedules (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	bus_id BIGINT NOT NULL,
	route_id BIGINT NOT NULL,
	departure_time DATETIME NOT NULL,
	arrival_time DATETIME NOT NULL,
	price DECIMAL(10,2) NOT NULL,
	available_seats INT NOT NULL,
	UNIQUE KEY uniq_schedule_bus (bus_id),
	UNIQUE KEY uniq_schedule_route (route_id),
	CONSTRAINT chk_seats CHECK (available_seats >= 0),
	CONSTRAINT fk_schedule_bus FOREIGN KEY (bus_id) REFERENCES buses(id) ON DELETE CASCADE,
	CONSTRAINT fk_schedule_route FOREIGN KEY (route_id) REFERENCES routes(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	schedule_id BIGINT NOT NULL,
	passenger_name VARCHAR(255) NOT NULL,
	passenger_email VARCHAR(255) NOT NULL,
	seats_booked INT NOT NULL,
	total_price DECIMAL(10,2) NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_booking_schedule (schedule_id),
	CONSTRAINT fk_booking_schedule FOREIGN KEY (schedule_id) REFERENCES schedules(id) ON DELETE RESTRICT
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS staff_roles (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	UNIQUE KEY uniq_role_name (name)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS staff (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	phone VARCHAR(50) NOT NULL DEFAULT '',
	role_id BIGINT NOT NULL,
	CONSTRAINT fk_staff_role FOREIGN KEY (role_id) REFERENCES staff_roles(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS bus_staff (
	bus_id BIGINT NOT NULL,
	role_id BIGINT NOT NULL,
	staff_id BIGINT NOT NULL,
	PRIMARY KEY (bus_id, role_id),
	CONSTRAINT fk_bus_staff_bus FOREIGN KEY (bus_id) REFERENCES buses(id) ON DELETE CASCADE,
	CONSTRAINT fk_bus_staff_staff FOREIGN KEY (staff_id) REFERENCES staff(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS fuel_records (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	bus_id BIGINT NOT NULL,
	liters DECIMAL(10,2) NOT NULL,
	cost DECIMAL(10,2) NOT NULL,
	odometer_km DECIMAL(12,1) NOT NULL DEFAULT 0,
	filled_at DATETIME NOT NULL,
	KEY idx_fuel_bus (bus_id),
	CONSTRAINT fk_fuel_bus FOREIGN KEY (bus_id) REFERENCES buses(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates missing tables. Safe to run on every start.
func EnsureSchema(ctx context.Context, conn *sql.DB) error {
	for i, ddl := range schema {
		if _, err := conn.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
