/*
Package counselsdk is a client for the Global Grad counsellor API.

The API authenticates with an HttpOnly session cookie, so a Client keeps a
cookie jar: a successful Signup, Login or GoogleLogin authenticates every
later call made through the same Client.

	c := counselsdk.NewClient("http://localhost:8000")

	user, err := c.Login(ctx, "ada@example.com", "correct horse")
	if err != nil {
		var apiErr *counselsdk.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			// wrong email or password
		}
		return err
	}

	_, err = c.SetUniversity(ctx, "usa-1", counselsdk.StatusShortlisted)
	list, err := c.ListUniversities(ctx)

# Events

Subscribe opens the websocket stream of selection changes made by the
user, from the web app or by the voice counsellor:

	stream, err := c.Subscribe(ctx)
	defer stream.Close()
	for {
		ev, err := stream.Next()
		...
	}

# Errors

Every non-2xx response is returned as *APIError carrying the HTTP status and
the server's detail message and machine code.
*/
package counselsdk
