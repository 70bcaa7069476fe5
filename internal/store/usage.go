package store

import "time"

// AddUsage adds estimated-spend units to the meter for the given day. The
// meter lives in the store rather than process memory so it survives restarts
// and stays coherent across instances. It is reporting only and never gates
// calls.
func (s *Store) AddUsage(day time.Time, units int) error {
	_, err := s.db.Exec(`
		INSERT INTO usage_meter (day, units) VALUES (?, ?)
		ON CONFLICT(day) DO UPDATE SET units = units + excluded.units
	`, day.UTC().Format("2006-01-02"), units)
	return err
}

// UsageForDay returns the estimated-spend units recorded for the given day.
func (s *Store) UsageForDay(day time.Time) (int, error) {
	var units int
	err := s.db.QueryRow(`
		SELECT COALESCE((SELECT units FROM usage_meter WHERE day = ?), 0)
	`, day.UTC().Format("2006-01-02")).Scan(&units)
	return units, err
}
