package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/pwambugu/glassauth/internal/client"
)

func main() {
	serverURL := flag.String("server", "http://localhost:4000", "auth server base URL")
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	tokenPath, err := client.DefaultTokenPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	tokens := client.NewTokenStore(tokenPath)
	c := client.NewAuthClient(*serverURL, nil, tokens)
	ctx := context.Background()

	switch flag.Arg(0) {
	case "signup":
		err = runSignup(ctx, c)
	case "login":
		err = runLogin(ctx, c)
	case "dashboard":
		err = runDashboard(ctx, c)
	case "logout":
		err = tokens.Clear()
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: authcli [-server URL] signup|login|dashboard|logout")
}

func runSignup(ctx context.Context, c *client.AuthClient) error {
	reader := bufio.NewReader(os.Stdin)

	name, err := prompt(reader, "Enter full name")
	if err != nil {
		return err
	}
	email, err := prompt(reader, "Enter email")
	if err != nil {
		return err
	}
	password, err := promptPassword()
	if err != nil {
		return err
	}

	form := client.NewForm(client.SignupFormConfig)
	if _, err := c.Submit(ctx, form, map[string]string{
		"name": name, "email": email, "password": password,
	}); err != nil {
		return err
	}

	fmt.Println("Success! Check your inbox for a verification email.")
	return nil
}

func runLogin(ctx context.Context, c *client.AuthClient) error {
	reader := bufio.NewReader(os.Stdin)

	email, err := prompt(reader, "Enter email")
	if err != nil {
		return err
	}
	password, err := promptPassword()
	if err != nil {
		return err
	}

	form := client.NewForm(client.LoginFormConfig)
	if _, err := c.Submit(ctx, form, map[string]string{
		"email": email, "password": password,
	}); err != nil {
		return err
	}

	fmt.Println("Success!")
	return nil
}

func runDashboard(ctx context.Context, c *client.AuthClient) error {
	message, err := c.Dashboard(ctx)
	if err != nil {
		return err
	}
	fmt.Println(message)
	return nil
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Println(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword() (string, error) {
	fmt.Println("Enter password")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return string(password), nil
}
