package model

import (
	"strings"
	"unicode"
)

type ReplyRule struct {
	Keywords []string
	Reply    string
}

// ReplyRules are checked in order; the first rule with a keyword in the message wins.
// Keywords match whole words, and a keyword of several words matches them in sequence.
var ReplyRules = []ReplyRule{
	{
		Keywords: []string{"cancel", "cancels", "cancelled", "canceled", "cancelling", "cancellation"},
		Reply:    "You can cancel any pending or confirmed booking from the Bookings tab. Cancellations more than 48 hours before check-in are free.",
	},
	{
		Keywords: []string{"book", "booking", "bookings", "booked", "reserve", "reservation", "reservations"},
		Reply:    "I'd be happy to help with your booking! You can pick your dates from the Book tab, and we'll confirm within a few hours.",
	},
	{
		Keywords: []string{"price", "prices", "pricing", "cost", "costs", "rate", "rates", "how much"},
		Reply:    "Boarding is $25 per night for cats and $35 per night for dogs. Grooming and pickup are available as add-ons.",
	},
	{
		Keywords: []string{"hour", "hours", "open", "opening", "close", "closing"},
		Reply:    "We're open for drop-off and pickup every day from 7am to 7pm. Our team is on site around the clock.",
	},
	{
		Keywords: []string{"vaccine", "vaccines", "vaccinated", "vaccination", "vaccinations", "shot", "shots", "rabies"},
		Reply:    "All guests need up-to-date vaccinations. Please bring or upload records before check-in.",
	},
	{
		Keywords: []string{"pickup", "pick up", "dropoff", "drop off"},
		Reply:    "We offer pickup and drop-off at $1.50 per mile. Just add it when you book!",
	},
	{
		Keywords: []string{"food", "feed", "feeding", "diet", "eat", "eats", "eating"},
		Reply:    "We serve premium food, but you're welcome to bring your pet's usual diet. We'll follow any feeding schedule you give us.",
	},
	{
		Keywords: []string{"photo", "photos", "picture", "pictures", "update", "updates", "video", "videos"},
		Reply:    "We send photo updates every day during a stay. Keep an eye on your notifications!",
	},
	{
		Keywords: []string{"hello", "hi", "hey"},
		Reply:    "Hi there! How can we help you and your furry friend today?",
	},
}

var FallbackReplies = []string{
	"Thanks for your message! A member of our team will get back to you shortly.",
	"Great question! Let me check with the team and follow up.",
	"Thanks for reaching out. Is there anything else we can help with in the meantime?",
}

const Greeting = "Hi! Welcome to PawStay Support. How can we help you today?"

// MatchReply returns the reply of the first matching rule.
func MatchReply(content string) (string, bool) {
	text := words(content)

	for _, rule := range ReplyRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, words(keyword)) {
				return rule.Reply, true
			}
		}
	}

	return "", false
}

// words lowercases s and rejoins its letter and digit runs as " a b c ".
func words(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	return " " + strings.Join(fields, " ") + " "
}
