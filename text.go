package main

// DefaultContent is the page copy served when no content file is
// configured.
func DefaultContent() *Content {
	return &Content{
		Owner: Owner{
			Name:      "Sai Charan Lenkallapally",
			ShortName: "Sai Charan",
			Roles: []string{
				"Full Stack Developer",
				"SDET",
				"Software Developer",
				"Machine Learning Engineer",
			},
			Summary: `Masters in Computer Science graduate with expertise in full-stack development,
	test automation, and machine learning.`,
			Email:  "saicharan27.jobs@gmail.com",
			Image:  "/assets/profile.jpg",
			Resume: "/assets/resume.pdf",
		},

		About: []string{
			`I am a Computer Science graduate student at Saint Louis University with a strong foundation in software
	development, testing, and machine learning. My experience spans across full-stack development,
	automated testing, and data-driven machine learning applications.`,
			`With a background as an SDET and software developer at Darwinbox Digital Solutions, I've worked on
	various aspects of HRMS systems, improving application performance and implementing robust automated
	testing frameworks.`,
			`I'm passionate about building scalable applications and implementing efficient automation solutions.
	My goal is to leverage my technical skills to develop innovative software that solves real-world problems.`,
		},

		Education: []Entry{
			{
				Title:        "Saint Louis University",
				Organization: "Masters in Computer Science - GPA: 3.9/4.0",
				Period:       "June 2023 - May 2025",
				Detail: `Relevant Coursework: Algorithms, Web Development, Software Programming, Databases,
	Artificial Intelligence, Machine Learning, Object-Oriented Programming, Data Structures.`,
			},
			{
				Title:        "Sreenidhi Institute of Science Technology",
				Organization: "Bachelor of Technology in Computer Science - GPA: 3.3/4.0",
				Period:       "June 2018 - July 2022",
			},
		},

		Experience: []Entry{
			{
				Title:        "SDET",
				Organization: "Darwinbox Digital Solutions Pvt Ltd",
				Period:       "July 2022 - July 2023",
				Highlights: []string{
					"Automated HRMS modules (Recruitment, Payroll, Onboarding) using Selenium, Java, and Rest Assured, including API, UI.",
					"Enhanced application performance from 68% to 85% and reduced bugs in regression releases.",
					"Developed automated test scripts for feature validation, supporting Java-based architectures.",
					"Identified and implemented test strategies aligned with unique functionality requirements.",
					"Engaged in Agile processes, collaborating with project managers and developers to refine requirements.",
					"Integrated CI/CD pipelines using Jenkins for efficient test execution and continuous improvement.",
				},
			},
			{
				Title:        "SDE Intern",
				Organization: "Darwinbox Digital Solutions Pvt Ltd",
				Period:       "February 2022 - July 2022",
				Highlights: []string{
					"Developed a web application using HTML, CSS, JavaScript (front end) and Node.js, Express.js, MongoDB (back end).",
					"Integrated Ajax for login, AWS SNS for messaging, AWS S3 for image storage, JWT for secure authentication.",
					"Implemented booking analytics, enabling data-driven insights and efficient decision-making.",
				},
			},
			{
				Title:        "ML Summer Intern",
				Organization: "GoalStreet",
				Period:       "May 2020 - July 2020",
				Highlights: []string{
					"Developed and deployed multiple ML models for warfarin dosage prediction.",
					"Implemented cross-validation and hyperparameter tuning, boosting model accuracy.",
					"Integrated the best-performing models into a user-friendly Gradio interface hosted on Hugging Face.",
				},
			},
		},

		Projects: []Project{
			{
				Title:  "Full Stack E-Commerce MERN Application",
				Period: "Jan - Mar 2024",
				Highlights: []string{
					"Developed a full-stack e-commerce platform using MongoDB, Express.js, React, and Node.js with Docker and Kubernetes.",
					"Designed and optimized database schemas and RESTful APIs with JWT authentication.",
					"Implemented CI/CD pipelines with automated testing, reducing deployment times by 65%.",
					"Created an admin dashboard with comprehensive monitoring and management capabilities.",
				},
				Tags: []string{"React", "Node.js", "MongoDB"},
			},
			{
				Title:  "Automatic Emotional Analysis of Textual Comments",
				Period: "Sept - Oct 2021",
				Highlights: []string{
					"Developed a machine learning system to classify emotions in textual comments and feedback.",
					"Performed end-to-end data processing, feature extraction, and model training.",
					"Provided insights on customer sentiment for improved user experiences.",
				},
				Tags: []string{"Python", "Machine Learning", "NLP"},
			},
			{
				Title:  "Air Canvas Using Python-OpenCV",
				Period: "Nov 2021 - Jan 2022",
				Highlights: []string{
					"Built a computer vision system to detect and track user gestures for a virtual canvas.",
					"Implemented modules for image acquisition, gesture detection, and UI visualization.",
					"Optimized system performance for real-time responsiveness and efficiency.",
				},
				Tags: []string{"Python", "OpenCV", "Computer Vision"},
			},
		},

		Skills: []SkillGroup{
			{Name: "Web Development", Skills: []string{"HTML", "CSS", "jQuery", "Node.js", "React.js", "Express", "Redux"}},
			{Name: "Programming Languages", Skills: []string{"Python", "Java", "C", "PHP", "JavaScript"}},
			{Name: "Databases", Skills: []string{"SQL", "MongoDB"}},
			{Name: "Testing", Skills: []string{"Pytest", "Docker", "Jenkins", "Selenium", "Rest API", "TestNG"}},
			{Name: "Cloud & AI", Skills: []string{"Machine Learning", "AWS", "GIT"}},
		},

		Achievements: []Achievement{
			{
				Title: "Coding Profiles",
				Items: []string{
					"5★ problem python solver in Hacker Rank",
					"Solved 180+ problems in Leetcode",
				},
			},
			{
				Title: "Certifications",
				Items: []string{
					"Introduction to Database Management Systems, NPTEL (Score: 97%), June 2022",
					"Programming in Java, NPTEL (Score: 89%), December 2019",
				},
			},
		},

		Links: []Link{
			{Label: "saicharan27.jobs@gmail.com", URL: "mailto:saicharan27.jobs@gmail.com", Kind: "email"},
			{Label: "LinkedIn Profile", URL: "https://www.linkedin.com/in/", Kind: "linkedin"},
			{Label: "GitHub Profile", URL: "https://github.com/Saicharan2707l", Kind: "github"},
			{Label: "LeetCode Profile", URL: "https://leetcode.com/", Kind: "code"},
		},

		Theme: Theme{
			Font: "Poppins",
			Light: Palette{
				Background: "#f9fafb",
				Surface:    "#ffffff",
				Foreground: "#1f2937",
				Muted:      "#4b5563",
				Primary:    "#2563eb",
				Secondary:  "#4f46e5",
				Accent:     "#06b6d4",
			},
			Dark: Palette{
				Background: "#111827",
				Surface:    "#1f2937",
				Foreground: "#f3f4f6",
				Muted:      "#9ca3af",
				Primary:    "#1d4ed8",
				Secondary:  "#4f46e5",
				Accent:     "#06b6d4",
			},
		},
	}
}
