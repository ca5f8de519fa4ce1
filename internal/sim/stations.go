package sim

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Station is one VLF or LF transmitter in the directory.
type Station struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Frequency float64 `json:"frequency"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Status    string  `json:"status"`
}

// StationStore persists the transmitter directory in SQLite.
type StationStore struct {
	db *sql.DB
}

const stationSchema = `
CREATE TABLE IF NOT EXISTS stations (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	name      TEXT    NOT NULL UNIQUE,
	type      TEXT    NOT NULL,
	frequency REAL    NOT NULL,
	country   TEXT    NOT NULL,
	latitude  REAL    NOT NULL,
	longitude REAL    NOT NULL,
	status    TEXT    NOT NULL DEFAULT 'active'
);`

// seedStations are well known VLF/LF transmitters, loaded on first run.
// Frequencies are in kHz.
var seedStations = []Station{
	{Name: "NAA (Cutler)", Type: "VLF", Frequency: 24.0, Country: "USA", Latitude: 44.65, Longitude: -67.28, Status: "active"},
	{Name: "NLK (Jim Creek)", Type: "VLF", Frequency: 24.8, Country: "USA", Latitude: 48.20, Longitude: -121.92, Status: "active"},
	{Name: "NML (LaMoure)", Type: "VLF", Frequency: 25.2, Country: "USA", Latitude: 46.37, Longitude: -98.34, Status: "active"},
	{Name: "NPM (Lualualei)", Type: "VLF", Frequency: 21.4, Country: "USA", Latitude: 21.42, Longitude: -158.15, Status: "active"},
	{Name: "NWC (Harold E. Holt)", Type: "VLF", Frequency: 19.8, Country: "Australia", Latitude: -21.82, Longitude: 114.17, Status: "active"},
	{Name: "DHO38 (Rhauderfehn)", Type: "VLF", Frequency: 23.4, Country: "Germany", Latitude: 53.08, Longitude: 7.61, Status: "active"},
	{Name: "GQD (Anthorn)", Type: "VLF", Frequency: 22.1, Country: "UK", Latitude: 54.91, Longitude: -3.28, Status: "active"},
	{Name: "FTA (Sainte-Assise)", Type: "VLF", Frequency: 20.9, Country: "France", Latitude: 48.54, Longitude: 2.58, Status: "testing"},
	{Name: "ICV (Tavolara)", Type: "VLF", Frequency: 20.27, Country: "Italy", Latitude: 40.92, Longitude: 9.73, Status: "active"},
	{Name: "JJI (Ebino)", Type: "VLF", Frequency: 22.2, Country: "Japan", Latitude: 32.08, Longitude: 130.83, Status: "active"},
	{Name: "DCF77 (Mainflingen)", Type: "LF", Frequency: 77.5, Country: "Germany", Latitude: 50.01, Longitude: 9.00, Status: "active"},
	{Name: "MSF (Anthorn)", Type: "LF", Frequency: 60.0, Country: "UK", Latitude: 54.91, Longitude: -3.28, Status: "active"},
	{Name: "WWVB (Fort Collins)", Type: "LF", Frequency: 60.0, Country: "USA", Latitude: 40.68, Longitude: -105.05, Status: "active"},
	{Name: "JJY (Otakadoya)", Type: "LF", Frequency: 40.0, Country: "Japan", Latitude: 37.37, Longitude: 140.85, Status: "active"},
	{Name: "TDF (Allouis)", Type: "LF", Frequency: 162.0, Country: "France", Latitude: 47.17, Longitude: 2.20, Status: "inactive"},
}

// OpenStationStore opens (or creates) the directory database at path
// and seeds it when empty.
func OpenStationStore(path string) (*StationStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec(stationSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &StationStore{db: db}
	if err := s.seed(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed stations: %w", err)
	}
	return s, nil
}

func (s *StationStore) seed() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM stations").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO stations
		(name, type, frequency, country, latitude, longitude, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, st := range seedStations {
		if _, err := stmt.Exec(st.Name, st.Type, st.Frequency, st.Country, st.Latitude, st.Longitude, st.Status); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// List returns stations matching the optional filters. stationType
// matches exactly, name is a case-insensitive substring.
func (s *StationStore) List(stationType, name string) ([]Station, error) {
	query := `SELECT id, name, type, frequency, country, latitude, longitude, status
		FROM stations WHERE 1=1`
	args := []any{}

	if stationType != "" {
		query += " AND type = ?"
		args = append(args, stationType)
	}
	if name != "" {
		query += " AND name LIKE ? COLLATE NOCASE"
		args = append(args, "%"+name+"%")
	}
	query += " ORDER BY frequency"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Station
	for rows.Next() {
		var st Station
		if err := rows.Scan(&st.ID, &st.Name, &st.Type, &st.Frequency, &st.Country, &st.Latitude, &st.Longitude, &st.Status); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *StationStore) Close() error {
	return s.db.Close()
}
