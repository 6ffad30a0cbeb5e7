package types_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/roster/internal/types"
)

func Test_Text_Encodes_Fixed_Field_Order(t *testing.T) {
	t.Parallel()

	s, err := types.NewStudent("Grace", "Hopper", date(1906, time.December, 9), "Computer Science", 3.9)
	require.NoError(t, err)

	assert.Equal(t, "2,Grace,Hopper,1906-12-09,Computer Science,3.90", s.WithID(2).Text())
}

func Test_Text_Escapes_Commas_In_Names_And_Major(t *testing.T) {
	t.Parallel()

	s, err := types.NewStudent("Jr,", "Smith, III", date(2001, 2, 3), "Math, Physics", 2.5)
	require.NoError(t, err)

	assert.Equal(t, `5,Jr\,,Smith\, III,2001-02-03,Math\, Physics,2.50`, s.WithID(5).Text())
}

func Test_ParseStudent_Round_Trips_Text(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		first string
		last  string
		major string
		gpa   float64
	}{
		{name: "Plain", first: "Ada", last: "Lovelace", major: "Mathematics", gpa: 4},
		{name: "Undeclared", first: "Grace", last: "Hopper", major: "", gpa: 0},
		{name: "CommaInMajor", first: "Alan", last: "Turing", major: "Logic, Computation, and Codes", gpa: 3.75},
		{name: "CommaInNames", first: "A,B", last: ",C,", major: ",", gpa: 1.25},
		{name: "BackslashNotBeforeComma", first: `Back\slash`, last: `x\y`, major: `C:\data`, gpa: 2},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			orig, err := types.NewStudent(testCase.first, testCase.last, date(1990, 6, 15), testCase.major, testCase.gpa)
			require.NoError(t, err)
			orig = orig.WithID(42)

			decoded, err := types.ParseStudent(orig.Text())
			require.NoError(t, err)

			if diff := cmp.Diff(orig, decoded, cmp.AllowUnexported(types.Student{})); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_ParseStudent_Applies_Escape_Rules(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		line  string
		first string
		last  string
		major string
	}{
		{name: "EscapedComma", line: `1,a\,b,c,,d,1.00`, first: "a,b", last: "c", major: "d"},
		{name: "BackslashKeptBeforeOtherChar", line: `1,a\b,c,,d,1.00`, first: `a\b`, last: "c", major: "d"},
		{name: "DoubleBackslashNotAnEscapeOfComma", line: `1,a\\,c,,d,1.00`, first: `a\\`, last: "c", major: "d"},
		{name: "ExtraFieldsIgnored", line: `1,a,b,,m,2.00,extra`, first: "a", last: "b", major: "m"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			s, err := types.ParseStudent(testCase.line)
			require.NoError(t, err)

			assert.Equal(t, testCase.first, s.FirstName())
			assert.Equal(t, testCase.last, s.LastName())
			assert.Equal(t, testCase.major, s.Major())
		})
	}
}

func Test_ParseStudent_Allows_Empty_Date(t *testing.T) {
	t.Parallel()

	s, err := types.ParseStudent("3,Edsger,Dijkstra,,,3.10")
	require.NoError(t, err)

	assert.Equal(t, 3, s.ID())
	_, ok := s.DateOfBirth()
	assert.False(t, ok)
	assert.Equal(t, "3,Edsger,Dijkstra,,,3.10", s.Text())
}

func Test_Text_Round_Trips_Year_One_Date(t *testing.T) {
	t.Parallel()

	orig, err := types.NewStudent("Ada", "Lovelace", date(1, time.January, 1), "", 1)
	require.NoError(t, err)
	orig = orig.WithID(1)

	line := orig.Text()
	assert.Equal(t, "1,Ada,Lovelace,0001-01-01,,1.00", line)

	parsed, err := types.ParseStudent(line)
	require.NoError(t, err)

	if diff := cmp.Diff(orig, parsed, cmp.AllowUnexported(types.Student{})); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, line, parsed.Text())
	assert.Contains(t, parsed.String(), "dob=0001-01-01")
}

func Test_ParseStudent_Returns_FormatError_When_Line_Malformed(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		line string
	}{
		{name: "TooFewFields", line: "1,Ada,Lovelace,1815-12-10,Math"},
		{name: "EscapedCommaReducesFieldCount", line: `1,Ada\,Lovelace,1815-12-10,Math,4.00`},
		{name: "NonNumericID", line: "one,Ada,Lovelace,1815-12-10,Math,4.00"},
		{name: "NonNumericGPA", line: "1,Ada,Lovelace,1815-12-10,Math,four"},
		{name: "BadDate", line: "1,Ada,Lovelace,1815-13-40,Math,4.00"},
		{name: "WrongDateLayout", line: "1,Ada,Lovelace,10/12/1815,Math,4.00"},
		{name: "Empty", line: ""},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := types.ParseStudent(testCase.line)
			require.ErrorIs(t, err, types.ErrFormat)

			var ferr *types.FormatError
			require.ErrorAs(t, err, &ferr)
			assert.Equal(t, testCase.line, ferr.Text)
		})
	}
}
