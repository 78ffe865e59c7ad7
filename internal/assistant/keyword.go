// Package assistant answers free-form real-estate questions.
package assistant

import (
	"context"
	"strings"
)

// Responder produces a reply to a user's message.
type Responder interface {
	Reply(ctx context.Context, message string) (string, error)
}

const (
	mortgageReply = "Mortgages are loans used to purchase homes when you don't have the full purchase price available upfront. " +
		"The key factors to understand are:\n\n" +
		"- Down payment: Typically 3-20% of the home's value\n" +
		"- Interest rates: Can be fixed or adjustable\n" +
		"- Loan term: Usually 15 or 30 years\n" +
		"- Credit score: Higher scores get better rates\n\n" +
		"Before applying, check your credit score, save for a down payment, and get pre-approved to understand how much house you can afford."

	firstTimeReply = "As a first-time homebuyer, here are some essential tips:\n\n" +
		"1. Check if you qualify for first-time buyer programs that offer lower down payments or closing cost assistance\n" +
		"2. Get pre-approved for a mortgage before house hunting\n" +
		"3. Consider all costs beyond the purchase price (taxes, insurance, maintenance)\n" +
		"4. Don't skip the home inspection\n" +
		"5. Research neighborhoods thoroughly\n\n" +
		"Many first-time buyers focus only on the monthly payment and forget about property taxes, homeowners insurance and upkeep."

	rentReply = "When considering renting vs buying, think about:\n\n" +
		"- How long you plan to stay in the area (buying usually makes more sense if you'll stay 5+ years)\n" +
		"- Upfront costs (renting requires a security deposit; buying needs a down payment and closing costs)\n" +
		"- Maintenance responsibilities (landlords handle maintenance when renting)\n" +
		"- Financial flexibility (renting allows more mobility)\n\n" +
		"Renting gives you flexibility but doesn't build equity. Buying builds wealth over time but comes with more responsibilities."

	marketReply = "Real estate markets are highly localized, but some general trends include:\n\n" +
		"- Urban vs. suburban preferences shift based on lifestyle changes\n" +
		"- Interest rates significantly impact affordability and buying power\n" +
		"- Housing inventory levels affect price competition\n" +
		"- Seasonal variations can make winter a buyer's market in many regions\n\n" +
		"Research data for your target location, as national trends don't always reflect local conditions."

	genericReplyFormat = "Thank you for your question about %s... As your real estate assistant, I can help with topics like " +
		"mortgages, home buying processes, renting vs. buying decisions, property investments, and market trends.\n\n" +
		"Could you provide more specific details about what you'd like to know regarding real estate?"

	echoLength = 30
)

type rule struct {
	keywords []string
	reply    string
}

// Rules are checked in order; the first match wins.
var rules = []rule{
	{[]string{"mortgage"}, mortgageReply},
	{[]string{"first time", "first-time"}, firstTimeReply},
	{[]string{"rent"}, rentReply},
	{[]string{"market", "prices"}, marketReply},
}

// KeywordResponder answers from a fixed set of canned replies.
type KeywordResponder struct{}

// Reply never fails.
func (KeywordResponder) Reply(_ context.Context, message string) (string, error) {
	lower := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.reply, nil
			}
		}
	}

	echo := []rune(message)
	if len(echo) > echoLength {
		echo = echo[:echoLength]
	}
	return strings.Replace(genericReplyFormat, "%s", string(echo), 1), nil
}
