package services

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/pkg/validation"
)

// Identifier prefixes
const (
	StudentIDPrefix = "2024"
	TeacherIDPrefix = "7000"

	defaultPasswordSuffix = "1234"
	randomDigits          = 10000
)

// IDGenerator derives ids, usernames and section codes from the school's
// naming conventions. Only the random digits of ids vary between calls.
type IDGenerator struct {
	rng *rand.Rand
}

// NewIDGenerator creates a generator. A nil source uses a randomly seeded one.
func NewIDGenerator(src rand.Source) *IDGenerator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &IDGenerator{rng: rand.New(src)}
}

// GenerateStudentID returns the student prefix followed by 4 random digits
func (g *IDGenerator) GenerateStudentID() string {
	return fmt.Sprintf("%s%04d", StudentIDPrefix, g.rng.IntN(randomDigits))
}

// GenerateTeacherID returns the teacher prefix followed by 4 random digits
func (g *IDGenerator) GenerateTeacherID() string {
	return fmt.Sprintf("%s%04d", TeacherIDPrefix, g.rng.IntN(randomDigits))
}

// GenerateStudentUsername returns "s" + studentID
func GenerateStudentUsername(studentID string) string {
	return "s" + studentID
}

// GenerateTeacherUsername prefixes the teacher id with "a" for Administrative
// staff and "t" for everyone else
func GenerateTeacherUsername(teacherID string, department models.Department) string {
	if department == models.DepartmentAdministrative {
		return "a" + teacherID
	}
	return "t" + teacherID
}

// GenerateSectionCode builds codes like CS-1-A. The ordinal maps to letters
// spreadsheet style: 0 is A, 25 is Z, 26 is AA.
func GenerateSectionCode(programID string, year models.YearLevel, ordinal int) string {
	return fmt.Sprintf("%s-%d-%s", programID, year.Number(), sectionLetters(ordinal))
}

func sectionLetters(ordinal int) string {
	if ordinal < 0 {
		ordinal = 0
	}
	var b []byte
	for n := ordinal + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

// GenerateDefaultPasswordDisplay returns the password shown after account
// creation or reset: the first two letters of the last name plus 1234
func GenerateDefaultPasswordDisplay(lastName string) string {
	name := strings.ToLower(strings.TrimSpace(lastName))
	prefix := name
	if utf8.RuneCountInString(name) > 2 {
		prefix = string([]rune(name)[:2])
	}
	return prefix + defaultPasswordSuffix
}

// uniqueID draws ids from next until taken reports false. When random draws
// keep colliding every suffix is scanned in order. Every candidate must
// satisfy the validation tag of its id kind.
func uniqueID(prefix, tag string, next func() string, taken func(string) bool) (string, error) {
	for i := 0; i < 50; i++ {
		id := next()
		if !validation.Var(id, tag) {
			return "", fmt.Errorf("generated id %q does not satisfy %s", id, tag)
		}
		if !taken(id) {
			return id, nil
		}
	}
	for n := 0; n < randomDigits; n++ {
		if id := fmt.Sprintf("%s%04d", prefix, n); !taken(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("no free identifier left for prefix %s", prefix)
}
