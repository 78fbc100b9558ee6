/*
Package bounty implements the bounty marketplace ledger.

A creator posts a bounty funded with a base reward and an optional bonus.
The whole amount is placed into an escrow held by the bounty custody, an
address controlled by this package only. The escrow recipient is the
platform admin, and the exchange key is sealed for the admin together
with a receipt of the bounty.

The first qualifying applicant is assigned to the bounty. Once the creator
approves a submission the bounty is completed, but no funds are moved. The
admin settles the bounty by swapping the escrow for the receipt. The
released reward is split between the platform treasury and the winner,
and an unawarded bonus is refunded to the creator. Until it is completed, a
bounty can be cancelled by the creator or the admin and the whole escrowed
amount goes back to the creator.

Bounty lifecycle:

	OPEN -> IN_PROGRESS -> COMPLETED
	OPEN, IN_PROGRESS -> CANCELLED
*/
package bounty
