package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	cases := map[string]struct {
		input  string
		expect Version
		err    bool
	}{
		"major minor": {input: "1.0", expect: Version{1, 0}},
		"two digits":  {input: "1.10", expect: Version{1, 10}},
		"major only":  {input: "4", expect: Version{4}},
		"three parts": {input: "4.6.1", expect: Version{4, 6, 1}},
		"empty":       {input: "", err: true},
		"text":        {input: "1.x", err: true},
		"negative":    {input: "1.-1", err: true},
		"trailing":    {input: "1.", err: true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			v, err := ParseVersion(tc.input)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, v)
		})
	}
}

func TestVersionCompare(t *testing.T) {
	cases := []struct {
		a, b   string
		expect int
	}{
		{"1.10", "1.9", 1},
		{"1.9", "1.10", -1},
		{"1.1", "1.1", 0},
		{"2.0", "1.5", 1},
		{"1", "1.0", -1},
	}

	for _, tc := range cases {
		t.Run(tc.a+"_"+tc.b, func(t *testing.T) {
			assert.Equal(t, tc.expect, MustParseVersion(tc.a).Compare(MustParseVersion(tc.b)))
		})
	}

	// a lexical comparison would put "1.10" first
	assert.Less(t, "1.10", "1.9")
}

func TestVersionWithin(t *testing.T) {
	min, max := MustParseVersion("1.0"), MustParseVersion("1.1")

	assert.True(t, MustParseVersion("1.0").Within(min, max))
	assert.True(t, MustParseVersion("1.1").Within(min, max))
	assert.False(t, MustParseVersion("1.2").Within(min, max))
	assert.False(t, MustParseVersion("0.9").Within(min, max))
	assert.Equal(t, "1.10", MustParseVersion("1.10").String())
}

func TestSelectDefault(t *testing.T) {
	reg := loadTestRegistry(t)

	names, err := reg.Select(DefaultSelection())
	require.NoError(t, err)

	expect := []string{
		"glActiveTextureARB",
		"glBegin",
		"glColor4d",
		"glDrawArrays",
		"glEnd",
		"glGetError",
		"glGetString",
	}
	if diff := cmp.Diff(expect, names); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectVersionRange(t *testing.T) {
	reg := loadTestRegistry(t)

	sel := DefaultSelection()
	sel.Max = MustParseVersion("1.0")
	sel.Extensions = nil

	names, err := reg.Select(sel)
	require.NoError(t, err)
	assert.NotContains(t, names, "glDrawArrays")
	assert.Contains(t, names, "glBegin")

	sel.Min = MustParseVersion("1.1")
	sel.Max = MustParseVersion("1.1")
	names, err = reg.Select(sel)
	require.NoError(t, err)
	assert.Equal(t, []string{"glDrawArrays"}, names)
}

func TestSelectAPIFilter(t *testing.T) {
	reg := loadTestRegistry(t)

	sel := Selection{
		Min:  MustParseVersion("2.0"),
		Max:  MustParseVersion("2.0"),
		APIs: []string{"gles2"},
	}

	names, err := reg.Select(sel)
	require.NoError(t, err)
	assert.Equal(t, []string{"glUniform4fv"}, names)

	sel.APIs = []string{"glcore"}
	names, err = reg.Select(sel)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSelectNumericVersionOrder(t *testing.T) {
	input := `<registry>
<commands>
<command><proto>void <name>glNine</name></proto></command>
<command><proto>void <name>glTen</name></proto></command>
</commands>
<feature api="gl" name="GL_VERSION_1_9" number="1.9"><require><command name="glNine"/></require></feature>
<feature api="gl" name="GL_VERSION_1_10" number="1.10"><require><command name="glTen"/></require></feature>
</registry>`

	reg, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	names, err := reg.Select(Selection{
		Min:  MustParseVersion("1.9"),
		Max:  MustParseVersion("1.9"),
		APIs: DefaultAPIs,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"glNine"}, names)

	names, err = reg.Select(Selection{
		Min:  MustParseVersion("1.10"),
		Max:  MustParseVersion("1.10"),
		APIs: DefaultAPIs,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"glTen"}, names)
}

func TestSelectMissingCommand(t *testing.T) {
	reg := loadTestRegistry(t)

	sel := DefaultSelection()
	sel.Extensions = AllowList{"GL_ARB_multitexture", "GL_ARB_imaging"}

	names, err := reg.Select(sel)
	assert.Nil(t, names)

	var missing *MissingCommandError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"glColorTable"}, missing.Names)
	assert.True(t, errors.Is(err, ErrMissingCommand))
	assert.EqualError(t, err, "commands missing from registry: glColorTable")
}

func TestSelectMissingCommandsSorted(t *testing.T) {
	input := `<registry>
<commands><command><proto>void <name>glHave</name></proto></command></commands>
<feature api="gl" name="GL_VERSION_1_0" number="1.0"><require>
<command name="glZeta"/><command name="glHave"/><command name="glAlpha"/>
</require></feature>
</registry>`

	reg, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	_, err = reg.Select(DefaultSelection())

	var missing *MissingCommandError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"glAlpha", "glZeta"}, missing.Names)
}

func TestSelectBadFeatureNumber(t *testing.T) {
	input := `<registry><commands/>
<feature api="gl" name="GL_VERSION_X" number="one.zero"/>
<feature api="gl" name="GL_VERSION_NONE"/>
</registry>`

	reg, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	_, err = reg.Select(DefaultSelection())
	assert.ErrorIs(t, err, ErrSchema)
	assert.ErrorContains(t, err, "GL_VERSION_X")
}

func TestAllowList(t *testing.T) {
	allow := AllowList{"GL_ARB_multitexture"}
	assert.True(t, allow.Contains("GL_ARB_multitexture"))
	assert.False(t, allow.Contains("GL_ARB_imaging"))
	assert.False(t, AllowList(nil).Contains(""))
}
