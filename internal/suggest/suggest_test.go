package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SpaceExploration(t *testing.T) {
	got := Generate("space exploration")
	assert.Equal(t, []string{
		"Write a story about space exploration",
		"Create a tutorial on space exploration",
		"Design a character based on space exploration",
		"Develop a business idea around space exploration",
		"Make a song lyric about space exploration",
	}, got)
	assert.Equal(t, FamilyGeneric, SelectFamily("space exploration"))
}

func TestSelectFamily_TableDriven(t *testing.T) {
	tests := []struct {
		input string
		want  Family
	}{
		{"", FamilyGeneric},
		{"learn python programming", FamilyEducation},
		{"online course", FamilyEducation},
		{"logo design", FamilyArt},
		{"create a bot", FamilyArt},
		{"mobile app", FamilyProgramming},
		{"developer tools", FamilyProgramming},
		{"travel blog", FamilyWriting},
		{"essay on freedom", FamilyWriting},
		{"pet food company", FamilyBusiness},
		{"  MARKET research  ", FamilyBusiness},
		{"space exploration", FamilyGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectFamily(tt.input))
		})
	}
}

func TestGenerate_FamilyTemplates(t *testing.T) {
	assert.Equal(t, "Create a lesson plan about learn python programming", Generate("learn python programming")[0])
	assert.Equal(t, "Design a poster representing logo design", Generate("logo design")[1])
	assert.Equal(t, "Write pseudocode for mobile app", Generate("mobile app")[4])
	assert.Equal(t, "Develop a plot outline involving travel blog", Generate("travel blog")[2])
	assert.Equal(t, "Write a value proposition for pet food company", Generate("pet food company")[3])
}

func TestGenerate_AlwaysFiveContainingInput(t *testing.T) {
	inputs := []string{
		"",
		"space exploration",
		"learn python programming",
		"  padded input  ",
		"Ünïcödé topic",
		"{input}",
		"write a story about a market app",
	}
	for _, in := range inputs {
		for _, g := range []Generator{{}, {Enhanced: true}} {
			got := g.Generate(in)
			require.Len(t, got, 5, "input %q enhanced=%v", in, g.Enhanced)
			for _, s := range got {
				assert.Contains(t, s, in)
			}
		}
	}
}

func TestGenerate_InterpolatesUntrimmedInput(t *testing.T) {
	got := Generate("  Padded  ")
	assert.Equal(t, "Write a story about   Padded  ", got[0])
}

func TestGenerate_EnhancementsNeverSurfaceByDefault(t *testing.T) {
	for _, in := range []string{"space", "learn", "design", "code", "write", "business"} {
		got := Generate(in)
		for _, s := range got {
			assert.NotContains(t, s, "mind map")
			assert.NotContains(t, s, "infographic")
			assert.NotContains(t, s, "fictional world")
		}
	}
}

func TestCandidates_BasePlusEnhancements(t *testing.T) {
	c := Candidates("tea")
	require.Len(t, c, 10)
	assert.Equal(t, Generate("tea"), c[:5])
	assert.Equal(t, "Create a mind map exploring different aspects of tea", c[5])
	assert.Equal(t, "Create a comparative analysis between tea and a related concept", c[9])
}

func TestGenerator_Enhanced(t *testing.T) {
	got := Generator{Enhanced: true}.Generate("tea")
	assert.Equal(t, []string{
		"Write a story about tea",
		"Create a mind map exploring different aspects of tea",
		"Create a tutorial on tea",
		"Design an infographic that explains tea visually",
		"Design a character based on tea",
	}, got)
}

func TestGenerate_ReturnsFreshSlice(t *testing.T) {
	a := Generate("tea")
	a[0] = "mutated"
	assert.Equal(t, "Write a story about tea", Generate("tea")[0])
}

func TestTokenCounts(t *testing.T) {
	counts, err := TokenCounts(Generate("tea"))
	require.NoError(t, err)
	require.Len(t, counts, 5)
	for _, c := range counts {
		assert.Greater(t, c, 0)
	}
}
