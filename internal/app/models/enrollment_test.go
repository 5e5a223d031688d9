package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrade(t *testing.T) {
	g, err := ParseGrade("")
	require.NoError(t, err)
	assert.Nil(t, g, "empty label means ungraded")

	for _, label := range []string{"A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D+", "D", "F"} {
		g, err := ParseGrade(label)
		require.NoError(t, err, label)
		require.NotNil(t, g)
		assert.Equal(t, Grade(label), *g)
	}

	for _, label := range []string{"E", "A+", "b+", " A", "F-"} {
		_, err := ParseGrade(label)
		assert.Error(t, err, label)
	}
}

func TestMemberSumType(t *testing.T) {
	members := []Member{
		&Student{Person: Person{ID: "s1", Name: "Alice", Type: PersonStudent}, RollNumber: "CS1"},
		&Instructor{Person: Person{ID: "i1", Name: "Dr. X", Type: PersonInstructor}, Position: "Professor"},
	}

	var kinds []string
	for _, m := range members {
		switch v := m.(type) {
		case *Student:
			kinds = append(kinds, "student:"+v.RollNumber)
		case *Instructor:
			kinds = append(kinds, "instructor:"+v.Position)
		}
		assert.True(t, m.Base().Type.Valid())
	}
	assert.Equal(t, []string{"student:CS1", "instructor:Professor"}, kinds)
}
