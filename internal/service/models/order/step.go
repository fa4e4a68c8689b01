package order

import "time"

// Step is one of the four fixed display stages of order progress.
type Step struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Time        string `json:"time"`
	Completed   bool   `json:"completed"`
}

const stepTimeLayout = "15:04"

// NewSteps returns the four canonical tracking steps with nothing completed.
func NewSteps(now time.Time) []Step {
	return []Step{
		{Label: "Order Confirmed", Description: "Your order has been received", Time: now.Format(stepTimeLayout)},
		{Label: "Preparing", Description: "Restaurant is preparing your food"},
		{Label: "On the Way", Description: "Your order is on the way"},
		{Label: "Delivered", Description: "Enjoy your meal!"},
	}
}
