// Package normalize reconciles the response shapes of the external store
// API. The API has answered the same call in several layouts; these
// functions are a compatibility shim and should shrink once the contract
// is fixed upstream.
package normalize
