/*
Package wallet serves wallet snapshots and administrative status changes.

Balances are never changed here; every money movement goes through the
transaction engine. Snapshots are cached in Redis under the
"wallet:user:<id>" key and are invalidated by the engine after each commit
and by BlockWallet/UnblockWallet.

Usage:

	svc := wallet.NewService(store, cacheService, 5*time.Minute)

	// Read the caller's wallet
	w, err := svc.GetWallet(ctx, userID)

	// Freeze a wallet; debits and credits against it are refused
	w, err = svc.BlockWallet(ctx, userID, "chargeback investigation")

Error Handling:

The service returns DomainErrors from internal/errors:
  - ErrWalletNotFound: the user has no wallet
  - ErrInternalFailure: store failures, logged with detail
*/
package wallet
