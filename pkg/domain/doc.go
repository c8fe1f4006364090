// Package domain contains the data shapes of the financial planning intake:
// the business and financial profiles collected from the user, the combined
// submission sent to the planning service, the recommendation set it returns,
// and the reference lists used to populate the intake forms. The types carry
// no infrastructure concerns and are shared by every other package.
package domain
