// Package destroy removes everything a deployment created.
//
// The function and the API gateway are removed by the client remark of the
// framework, then the DNS records of every domain the prior deployment
// recorded. DNS domains are removed concurrently.
package destroy
