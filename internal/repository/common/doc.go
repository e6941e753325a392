// Package common holds helpers shared by the repository integration tests.
// They are compiled with the integration build tag only.
package common
