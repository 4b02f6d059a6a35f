package ndbc

import "fmt"

// FileURL builds the canonical fileServer download URL for a chosen file.
// It is pure string templating over
// {fileServer}/{dataset}/{buoyid}/{buoyid}{filename}; inputs are not
// validated here.
func (c *Client) FileURL(dataset, buoyID, filename string) string {
	return fmt.Sprintf("%s%s/%s/%s%s", c.fileServerBase, dataset, buoyID, buoyID, filename)
}
