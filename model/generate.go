package model

import (
	"math/rand"
	"strings"
	"time"

	"github.com/auxten/postgresql-parser/pkg/sql/types"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/lib/pq/oid"
)

func init() {
	rand.Seed(time.Now().UnixNano())
}

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

func RandStringRunes(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rand.Intn(len(letterRunes))]
	}
	return string(b)
}

// SampleValue produces a plausible value for the column, used for table
// seeding and component previews. String columns with recognizable names
// get realistic fake data; everything else falls back to its type family.
func (c *Column) SampleValue() interface{} {
	if c.Family == TypeString {
		if v := fakeByName(c.Name); v != "" {
			return v
		}
	}

	switch c.Type.Family() {
	case types.IntFamily:
		return rand.Int31()
	case types.StringFamily:
		if c.Type.Oid() == oid.T_text {
			return RandStringRunes(1 + rand.Intn(19))
		}
		return RandStringRunes(1)
	case types.BoolFamily:
		return rand.Intn(2) == 0
	case types.FloatFamily, types.DecimalFamily:
		return rand.Float64()
	case types.DateFamily:
		return time.Now().AddDate(0, 0, rand.Intn(1000)-500)
	case types.TimestampFamily, types.TimestampTZFamily:
		return time.Now().Add(time.Duration(rand.Intn(1000)-500) * time.Hour)
	case types.TimeFamily, types.TimeTZFamily:
		return time.Now().Add(time.Duration(rand.Intn(1000)-500) * time.Second)
	case types.IntervalFamily:
		return time.Duration(rand.Intn(1000)-500) * time.Second
	case types.JsonFamily:
		return "{}"
	case types.UuidFamily:
		return uuid.New()
	default:
		return nil
	}
}

func fakeByName(column string) string {
	name := strings.ToLower(column)
	switch {
	case strings.Contains(name, "email"):
		return faker.Email()
	case strings.Contains(name, "phone"):
		return faker.Phonenumber()
	case strings.Contains(name, "first_name"):
		return faker.FirstName()
	case strings.Contains(name, "last_name"), strings.Contains(name, "surname"):
		return faker.LastName()
	case name == "name", strings.HasSuffix(name, "_name"), name == "username":
		return faker.FirstName() + " " + faker.LastName()
	default:
		return ""
	}
}

// SampleRow generates one value per column, keyed by column name.
func (t *Table) SampleRow() map[string]interface{} {
	row := make(map[string]interface{}, len(t.Columns))
	for _, c := range t.Columns {
		row[c.Name] = c.SampleValue()
	}
	return row
}
