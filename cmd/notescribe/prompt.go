package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nguyentantai21042004/notescribe/internal/processor"
)

// askRequest reads the run settings interactively: file path, SOAP,
// BIRP, then an optional instruction file.
func askRequest(in io.Reader, out io.Writer) (processor.Request, error) {
	r := bufio.NewReader(in)
	var req processor.Request

	path, err := ask(r, out, "Enter the path to the audio file: ")
	if err != nil {
		return req, err
	}
	req.AudioPath = path

	soap, err := ask(r, out, "Do you want to generate a SOAP note? (yes/no): ")
	if err != nil {
		return req, err
	}
	req.SOAP = isYes(soap)

	birp, err := ask(r, out, "Do you want to generate a BIRP note? (yes/no): ")
	if err != nil {
		return req, err
	}
	req.BIRP = isYes(birp)

	instructions, err := ask(r, out, "Enter the path to a special instructions file (leave blank for none): ")
	if err != nil {
		return req, err
	}
	req.InstructionsPath = instructions

	return req, nil
}

// ask prints question and returns the trimmed answer. EOF reads as a blank answer.
func ask(r *bufio.Reader, out io.Writer, question string) (string, error) {
	fmt.Fprint(out, question)
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func isYes(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "yes")
}
