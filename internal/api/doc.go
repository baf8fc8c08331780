// Package api implements the JSON task endpoints: request decoding and
// validation, the error-to-status mapping, and response envelopes. It
// translates HTTP concerns into calls against the store interfaces.
package api
