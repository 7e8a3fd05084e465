package track

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	assert := assert.New(t)

	program := strings.Join([]string{
		"MVI A, 0x10",
		"MVI B, 0x20",
		"ADD B",
		"HLT",
	}, "\n")

	assert.Equal(Track{Current}, Render(program, 0))
	assert.Equal(Track{Done, Current}, Render(program, 1))
	assert.Equal(Track{Done, Done, Done, Current}, Render(program, 3))
	assert.Equal(Track{Done, Done, Done, Done}, Render(program, 4))
	assert.Equal(Track{Done, Done, Done, Done}, Render(program, 5))
}

func TestRenderBounded(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Track{Done, Done}, Render("NOP\nNOP", 50_000_000))
	assert.Equal(Track{Done, Blank, Done}, Render("NOP\n\nNOP", 1<<40))
}

func TestRenderNegative(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Track{Current}, Render("NOP", -3))
}

func TestRenderBlankLines(t *testing.T) {
	assert := assert.New(t)

	program := strings.Join([]string{
		"MVI A, 0x10",
		"",
		"MVI B, 0x20",
		"ADD B",
	}, "\n")

	assert.Equal(Track{Done, Current}, Render(program, 1))
	assert.Equal(Track{Done, Blank, Done, Current}, Render(program, 2))
	assert.Equal(Track{Done, Blank, Done, Current}, Render(program, 3))
	assert.Equal("✔\n\n✔\n▶", Render(program, 3).String())
	assert.Equal(Track{Done, Blank, Done, Done}, Render(program, 4))
	assert.Equal("✔\n\n✔\n✔\n", Render(program, 4).String())
}

func TestRenderBlankLineSlot(t *testing.T) {
	assert := assert.New(t)

	// The blank line takes an index slot, so the count that reaches it
	// and the one after render the same.
	program := "MVI A, 0x10\n\nMVI B, 0x20\nADD B"
	assert.Equal(Render(program, 2), Render(program, 3))
	assert.NotEqual(Render(program, 3), Render(program, 4))
}

func count(track Track, marker Marker) (n int) {
	for _, m := range track {
		if m == marker {
			n++
		}
	}
	return
}

func TestRenderProperties(t *testing.T) {
	assert := assert.New(t)

	programs := []string{
		"NOP",
		"NOP\nNOP",
		"A\n\nB\nC",
		"A\nB\n\nC\n\nD",
	}

	for _, program := range programs {
		lines := strings.Split(program, "\n")
		for k := 0; k <= len(lines); k++ {
			track := Render(program, k)
			if k < len(lines) {
				assert.Equal(Current, track[len(track)-1], "%q %d", program, k)
				assert.False(track.Finished(), "%q %d", program, k)
			} else {
				assert.NotEqual(Current, track[len(track)-1], "%q %d", program, k)
				assert.True(track.Finished(), "%q %d", program, k)
			}

			// Every consumed source line is either done or a placeholder.
			consumed := track.Done() + count(track, Blank)
			assert.GreaterOrEqual(consumed, k, "%q %d", program, k)
			assert.LessOrEqual(consumed, k+1, "%q %d", program, k)
			assert.LessOrEqual(track.Done(), k, "%q %d", program, k)
			assert.LessOrEqual(count(track, Current), 1, "%q %d", program, k)
		}
	}
}

func TestRenderNoBlankLines(t *testing.T) {
	assert := assert.New(t)

	program := "A\nB\nC\nD\nE"
	for k := 0; k <= 5; k++ {
		assert.Equal(k, Render(program, k).Done())
	}
}

func TestMarkLastFailed(t *testing.T) {
	assert := assert.New(t)

	track := Render("A\n\nB\nC", 2)
	failed := track.MarkLastFailed()

	assert.Equal(Track{Done, Blank, Done, Failed}, failed)
	assert.Equal(Track{Done, Blank, Done, Current}, track)
	assert.Equal("✔\n\n✔\n❌\n", failed.String())

	assert.Equal(Track{Failed}, Track{}.MarkLastFailed())
	assert.Equal(Track{Failed}, Track(nil).MarkLastFailed())
}

func TestMarkerString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("", Blank.String())
	assert.Equal("✔", Done.String())
	assert.Equal("▶", Current.String())
	assert.Equal("❌", Failed.String())
	assert.Equal("✔\n▶", Track{Done, Current}.String())
	assert.Equal("", Track{}.String())
}
