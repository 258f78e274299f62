package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCost(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"R$ 250,00", 250.00},
		{"R$ 100,50", 100.50},
		{"  R$ 75,5 ", 75.5},
		{"R$ 1.250,00", 1250.00},
		{"50", 50},
		{"Grátis", 0},
		{"Gratuito", 0},
		{"", 0},
		{"R$ -30,00", 30},
		{"1,2,3", 0},
		{",", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCost(tt.in))
		})
	}
}

func TestNormalizeScheduleText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"two slots", "Mon 10:00<br>Wed 10:00", "Mon 10:00 | Wed 10:00"},
		{"self-closing break", "Seg 08:00 - 09:00<br/>Qua 08:00 - 09:00", "Seg 08:00 - 09:00 | Qua 08:00 - 09:00"},
		{"trailing break", "Tue 18:00<br />", "Tue 18:00"},
		{"leading break", "<br>Tue 18:00", "Tue 18:00"},
		{"empty slot collapsed", "Mon<br><br>Fri", "Mon | Fri"},
		{"whitespace collapsed", "  Mon \n\t 10:00   <br>\n   Wed   10:00 \n", "Mon 10:00 | Wed 10:00"},
		{"non-breaking spaces collapsed", "Seg &nbsp; 10:00&nbsp;&nbsp;<br>&nbsp;Qua 10:00", "Seg 10:00 | Qua 10:00"},
		{"unicode spaces collapsed", "Ter\u2003\u2003 19:00\u00a0<br>\u202fQui 19:00", "Ter 19:00 | Qui 19:00"},
		{"inline markup dropped", "<b>Seg</b> 08:00<br><span>Qua</span> 08:00", "Seg 08:00 | Qua 08:00"},
		{"plain text", "Daily 07:00", "Daily 07:00"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeScheduleText(tt.in)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "<", "markup left in schedule")
			assert.NotContains(t, got, "  ", "repeated whitespace in schedule")
			assert.NotContains(t, got, "\u00a0", "non-breaking space in schedule")
		})
	}
}

func TestNormalizeSchedule_SingleDelimiterBetweenSlots(t *testing.T) {
	got := NormalizeScheduleText("Ter 14:00<br>Qui 14:00")

	assert.Equal(t, 1, strings.Count(got, ScheduleDelimiter), "delimiters in %q", got)
	assert.False(t, strings.HasPrefix(got, "|") || strings.HasSuffix(got, "|"), "dangling delimiter in %q", got)
}
