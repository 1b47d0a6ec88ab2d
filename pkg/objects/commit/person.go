package commit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Person identifies who authored or committed a snapshot, together with the
// moment it happened.
//
// Serialized form inside a commit payload:
//
//	Name <email> unix-timestamp +HHMM
//
// The timestamp is seconds since the Unix epoch and the offset is the local
// timezone at the time of the action. Both halves matter: the timestamp
// orders history, the offset preserves the author's local wall-clock.
type Person struct {
	Name  string
	Email string
	When  time.Time
}

// personLinePattern captures "name <email> timestamp offset".
var personLinePattern = regexp.MustCompile(`^(.*) <(.*)> (\d+) ([+-]\d{4})$`)

// NewPerson creates a person stamped with the given time
func NewPerson(name, email string, when time.Time) (Person, error) {
	if strings.TrimSpace(name) == "" {
		return Person{}, fmt.Errorf("person name cannot be empty")
	}
	if strings.ContainsAny(name, "<>\n") {
		return Person{}, fmt.Errorf("invalid characters in person name: %q", name)
	}
	if strings.ContainsAny(email, "<>\n") {
		return Person{}, fmt.Errorf("invalid characters in person email: %q", email)
	}

	return Person{Name: name, Email: email, When: when}, nil
}

// Format renders the person in its canonical serialized form
func (p Person) Format() string {
	return fmt.Sprintf("%s <%s> %d %s", p.Name, p.Email, p.When.Unix(), formatOffset(p.When))
}

// String returns just the identity half, "Name <email>"
func (p Person) String() string {
	return fmt.Sprintf("%s <%s>", p.Name, p.Email)
}

// ParsePerson parses the canonical serialized form back into a Person
func ParsePerson(line string) (Person, error) {
	matches := personLinePattern.FindStringSubmatch(line)
	if matches == nil {
		return Person{}, fmt.Errorf("malformed person line: %q", line)
	}

	seconds, err := strconv.ParseInt(matches[3], 10, 64)
	if err != nil {
		return Person{}, fmt.Errorf("invalid timestamp in person line: %w", err)
	}

	loc, err := parseOffset(matches[4])
	if err != nil {
		return Person{}, err
	}

	return Person{
		Name:  matches[1],
		Email: matches[2],
		When:  time.Unix(seconds, 0).In(loc),
	}, nil
}

// formatOffset renders the timezone offset as +HHMM or -HHMM
func formatOffset(t time.Time) string {
	_, offsetSeconds := t.Zone()
	sign := "+"
	if offsetSeconds < 0 {
		sign = "-"
		offsetSeconds = -offsetSeconds
	}
	hours := offsetSeconds / 3600
	minutes := (offsetSeconds % 3600) / 60
	return fmt.Sprintf("%s%02d%02d", sign, hours, minutes)
}

// parseOffset converts +HHMM / -HHMM into a fixed-zone location
func parseOffset(offset string) (*time.Location, error) {
	hours, err := strconv.Atoi(offset[1:3])
	if err != nil {
		return nil, fmt.Errorf("invalid timezone offset %q: %w", offset, err)
	}
	minutes, err := strconv.Atoi(offset[3:5])
	if err != nil {
		return nil, fmt.Errorf("invalid timezone offset %q: %w", offset, err)
	}

	seconds := hours*3600 + minutes*60
	if offset[0] == '-' {
		seconds = -seconds
	}
	return time.FixedZone(offset, seconds), nil
}
