// Package sponsored provides utilities for gas-sponsored (fee payer) transactions.
//
// Sponsored transactions allow a third party (the sponsor) to pay gas fees on behalf
// of the transaction sender. This enables gasless experiences for end users.
//
// # Basic Usage
//
// For a simple sponsored transaction:
//
//	// Build the transaction with the sponsor as fee payer
//	fpTxn, _ := sponsored.BuildFeePayerTransaction(ctx, client, sender.Address(), sponsorAddr, payload)
//
//	// Sender signs
//	signingMsg, _ := fpTxn.SigningMessage()
//	senderAuth, _ := sender.Sign(signingMsg)
//
//	// Sponsor signs (could be on different server)
//	sponsorAuth, _ := sponsor.Sign(signingMsg)
//
//	// Combine signatures and submit
//	signedTxn, _ := fpTxn.Sign(senderAuth, nil, sponsorAuth)
//	result, _ := client.SubmitTransaction(ctx, signedTxn)
//
// # Gas Station Integration
//
// For integrating with a gas station service:
//
//	gasStation := sponsored.NewGasStation(gasStationURL, apiKey)
//
//	// Get the sponsor's authenticator and address for a transaction
//	sponsorAuth, sponsorAddr, _ := gasStation.SponsorTransaction(ctx, rawTxn, senderAuth, nil, nil)
package sponsored
