package storage

import "testing"

func TestRebind(t *testing.T) {
	pg := &DB{driver: "postgres"}
	got := pg.rebind("UPDATE blocks SET content = ?, order_index = ? WHERE id = ?")
	want := "UPDATE blocks SET content = $1, order_index = $2 WHERE id = $3"
	if got != want {
		t.Fatalf("rebind = %q, want %q", got, want)
	}

	for _, driver := range []string{"sqlite", "mysql"} {
		db := &DB{driver: driver}
		q := "SELECT * FROM pages WHERE id = ?"
		if got := db.rebind(q); got != q {
			t.Fatalf("%s rebind changed query to %q", driver, got)
		}
	}
}
