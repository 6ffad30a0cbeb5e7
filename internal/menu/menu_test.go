package menu_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/roster/internal/menu"
)

// script answers prompts from a fixed list and echoes them into out, so
// the buffer reads like a terminal transcript. Once the answers run out it
// returns err (io.EOF by default).
type script struct {
	answers []string
	out     *bytes.Buffer
	err     error
}

func (s *script) Prompt(prompt string) (string, error) {
	s.out.WriteString(prompt)
	if len(s.answers) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}

	answer := s.answers[0]
	s.answers = s.answers[1:]
	s.out.WriteString(answer + "\n")

	return answer, nil
}

func newSession(answers ...string) (*menu.Session, *bytes.Buffer) {
	var out bytes.Buffer
	return menu.NewSession(&script{answers: answers, out: &out}, &out), &out
}

func Test_ReadInt_Reprompts_Until_Integer(t *testing.T) {
	t.Parallel()

	s, out := newSession("abc", "1.5", " 42 ")

	n, err := s.ReadInt("ID")
	require.NoError(t, err)

	assert.Equal(t, 42, n)
	assert.Equal(t, 2, strings.Count(out.String(), "Enter an integer."))
}

func Test_ReadDate_Reprompts_Until_Date(t *testing.T) {
	t.Parallel()

	s, out := newSession("10/12/1815", "1815-02-30", "1815-12-10")

	d, err := s.ReadDate("Date")
	require.NoError(t, err)

	assert.Equal(t, "1815-12-10", d.Format("2006-01-02"))
	assert.Equal(t, 2, strings.Count(out.String(), "Date must be in yyyy-MM-dd format."))
}

func Test_ReadFloat_Reprompts_Until_Within_Bounds(t *testing.T) {
	t.Parallel()

	s, out := newSession("high", "4.5", "-1", "NaN", "3.25")

	v, err := s.ReadFloat("GPA", 0, 4)
	require.NoError(t, err)

	assert.InDelta(t, 3.25, v, 0)
	assert.Equal(t, 1, strings.Count(out.String(), "Enter a numeric value."))
	assert.Equal(t, 3, strings.Count(out.String(), "Value must be between 0.00 and 4.00"))
}

func Test_ReadInt_Returns_Prompt_Error(t *testing.T) {
	t.Parallel()

	s, _ := newSession()

	_, err := s.ReadInt("ID")
	require.ErrorIs(t, err, io.EOF)
}

func Test_Run_Dispatches_Commands_And_Exits(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	calls := 0

	m := menu.New("Test System", &script{answers: []string{"1", "9", " 1 ", "0"}, out: &out}, &out, []menu.Command{
		{Key: "1", Label: "Do it", Run: func(s *menu.Session) error {
			calls++
			s.Linef("did it")
			return nil
		}},
	})

	require.NoError(t, m.Run())

	assert.Equal(t, 2, calls)
	transcript := out.String()
	assert.True(t, strings.HasPrefix(transcript, "Welcome to the Test System\n"))
	assert.Contains(t, transcript, "Menu:\n1) Do it\n0) Exit\n")
	assert.Contains(t, transcript, "Unknown option.")
	assert.True(t, strings.HasSuffix(transcript, "Bye.\n"))
}

func Test_Run_Exits_Cleanly_On_End_Of_Input(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
	}{
		{name: "EOF", err: io.EOF},
		{name: "CtrlC", err: liner.ErrPromptAborted},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			m := menu.New("Test System", &script{out: &out, err: testCase.err}, &out, nil)

			require.NoError(t, m.Run())
			assert.True(t, strings.HasSuffix(out.String(), "Bye.\n"))
		})
	}
}

func Test_Run_Returns_Handler_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	var out bytes.Buffer
	m := menu.New("Test System", &script{answers: []string{"1"}, out: &out}, &out, []menu.Command{
		{Key: "1", Label: "Fail", Run: func(*menu.Session) error { return boom }},
	})

	require.ErrorIs(t, m.Run(), boom)
}
