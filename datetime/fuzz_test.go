package datetime

import "testing"

func FuzzDayIndex(f *testing.F) {
	seeds := [][4]int{
		{0, 1, 1, 1},
		{0, 1970, 1, 1},
		{1, 20000, 2, 21},
		{0, 1582, 10, 15},
		{0, 1582, 10, 10},
		{1, 1, 12, 31},
		{0, 1900, 2, 29},
	}
	for _, s := range seeds {
		f.Add(s[0], s[1], s[2], s[3])
	}

	f.Fuzz(func(t *testing.T, era, year, month, day int) {
		if era < 0 || era > 1 || year < 1 || year > 1_000_000 {
			return
		}
		d := Date{Era: Era(era), Year: year, Month: month, Day: day}
		idx, err := d.DayIndex()
		if err != nil {
			return
		}

		// Consecutive valid days must have consecutive indices.
		prev := d.PrevDay()
		if prev.Validate() != nil {
			t.Fatalf("PrevDay(%s) = %s is invalid", d, prev)
		}
		pidx, err := prev.DayIndex()
		if err != nil {
			t.Fatalf("DayIndex(%s): %v", prev, err)
		}
		if idx-pidx != 1 {
			t.Errorf("DayIndex(%s)=%d, DayIndex(%s)=%d: not consecutive", d, idx, prev, pidx)
		}
		if Compare(prev, d) != -1 {
			t.Errorf("Compare(%s, %s) != -1", prev, d)
		}
	})
}
