// Package negotiation drives the fixed four-stage seller/buyer pipeline:
// shortlist, review, selection, approval. Each stage binds a role and goal
// to a prompt built from the request and the previous stage's output, and
// delegates entirely to the reasoning capability. Stage output is opaque
// text; nothing between stages is parsed or validated.
package negotiation

import (
	"fmt"

	"marketcrew/internal/request"
)

// Stage is one declarative step of the pipeline.
type Stage struct {
	Name           string
	Role           string
	Goal           string
	Backstory      string
	ExpectedOutput string

	// Prompt builds the task description from the request and the prior
	// stage's output. prior is empty for the first stage.
	Prompt func(req *request.Request, prior string) string
}

// Stages returns the four fixed stages in execution order.
func Stages() []Stage {
	return []Stage{
		{
			Name:           "Shortlist",
			Role:           "Junior Seller Agent",
			Goal:           "shortlist up to 3 matching sellers",
			Backstory:      "Expert in filtering offers based on constraints like budget and instruction.",
			ExpectedOutput: "List of up to 3 sellers or a message if none match.",
			Prompt: func(req *request.Request, _ string) string {
				return fmt.Sprintf(
					"You are given a product request and a list of sellers:\n\n"+
						"- Product Details: %s\n"+
						"- Quantity: %d\n"+
						"- Unit Budget: %.2f\n"+
						"- Buyer Instruction: %s\n\n"+
						"Select up to 3 sellers where:\n"+
						"- product_id matches\n"+
						"- unit price <= unit budget\n"+
						"- description meets instruction\n"+
						"- quantity is available\n\n"+
						"Return JSON list: SellerID, ProductID, Price, Description, Reason.\n"+
						"If no match, say: 'No suitable sellers available.'",
					req.DetailsJSON(), req.Quantity, req.Budget, req.Instruction)
			},
		},
		{
			Name:           "Review",
			Role:           "Senior Seller Review Agent",
			Goal:           "validate or correct the junior seller shortlist",
			Backstory:      "You're the QA lead ensuring seller options meet buyer constraints.",
			ExpectedOutput: "Final shortlist or rejection with feedback.",
			Prompt: func(req *request.Request, prior string) string {
				return fmt.Sprintf(
					"Shortlist under review:\n%s\n\n"+
						"Review the seller shortlist for ProductID=%s:\n"+
						"- Confirm unit price <= %.2f\n"+
						"- Ensure instruction is met: %s\n"+
						"- Confirm quantity %d is available\n"+
						"If invalid, revise and give reason.\n"+
						"If none qualify, say: 'No valid sellers.'",
					prior, req.ProductID, req.Budget, req.Instruction, req.Quantity)
			},
		},
		{
			Name:           "Selection",
			Role:           "Junior Buyer Agent",
			Goal:           "select the best seller option",
			Backstory:      "You evaluate cost and instruction fit to choose the most suitable seller.",
			ExpectedOutput: "Best seller selected with reason.",
			Prompt: func(req *request.Request, prior string) string {
				return fmt.Sprintf(
					"Senior-approved shortlist:\n%s\n\n"+
						"Pick the best seller from the senior-approved list:\n"+
						"- Lowest acceptable price\n"+
						"- Matches the instruction well: %s\n"+
						"- Quantity %d available\n\n"+
						"Return JSON: SellerID, Price, Description, Reason.",
					prior, req.Instruction, req.Quantity)
			},
		},
		{
			Name:           "Approval",
			Role:           "Senior Buyer Review Agent",
			Goal:           "approve or revise the final choice",
			Backstory:      "You verify that the chosen seller fits all constraints.",
			ExpectedOutput: "Final approval and reasoning in JSON.",
			Prompt: func(req *request.Request, prior string) string {
				return fmt.Sprintf(
					"Selected seller:\n%s\n\n"+
						"Review the chosen seller:\n"+
						"- Ensure price <= %.2f\n"+
						"- Confirm description matches instruction: %s\n"+
						"- Confirm quantity meets the requested %d\n"+
						"Approve if valid, else revise and explain.",
					prior, req.Budget, req.Instruction, req.Quantity)
			},
		},
	}
}
