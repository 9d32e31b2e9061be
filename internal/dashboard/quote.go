package dashboard

import (
	"fmt"

	"github.com/bradenpeterson/JournalApp/pkg/dates"
)

// Quote is a short attributed saying shown for a day.
type Quote struct {
	Text   string
	Author string
}

func (q Quote) String() string { return fmt.Sprintf("%s - %s", q.Text, q.Author) }

var quotes = []Quote{
	{"The only way to do great work is to love what you do.", "Steve Jobs"},
	{"You miss 100% of the shots you don't take.", "Wayne Gretzky"},
	{"Whether you think you can or you think you can't, you're right.", "Henry Ford"},
	{"Do one thing every day that scares you.", "Eleanor Roosevelt"},
	{"Success is not final, failure is not fatal: it is the courage to continue that counts.", "Winston Churchill"},
	{"The journey of a thousand miles begins with one step.", "Lao Tzu"},
	{"Believe you can and you're halfway there.", "Theodore Roosevelt"},
	{"What we think, we become.", "Buddha"},
	{"Happiness is not something ready made. It comes from your own actions.", "Dalai Lama"},
	{"Act as if what you do makes a difference. It does.", "William James"},
}

// QuoteFor picks the quote for date deterministically: h = h*31 + c over
// the date's bytes in 32-bit arithmetic, then |h| mod len(quotes). An empty
// date means today.
func QuoteFor(date string) Quote {
	if date == "" {
		date = dates.Today()
	}
	var h int32
	for i := 0; i < len(date); i++ {
		h = h*31 + int32(date[i])
	}
	n := int64(h)
	if n < 0 {
		n = -n
	}
	return quotes[n%int64(len(quotes))]
}
