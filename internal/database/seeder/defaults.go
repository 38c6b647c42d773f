package seeder

// Defaults returns the admin account followed by the demo catalog. Demo data
// is skipped when withDemo is false.
func Defaults(admin AdminSeeder, withDemo bool) []Seeder {
	out := []Seeder{admin}
	if withDemo {
		out = append(out, DemoSeeder{})
	}
	return out
}
