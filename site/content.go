package site

import (
	"github.com/google/uuid"

	"github.com/toqaosama/portfolio-backend/models"
)

// fixtureNamespace keeps fixture ids stable across restarts so links to a
// static project survive a redeploy.
var fixtureNamespace = uuid.MustParse("8f9d5c1e-4b7a-4e43-9d36-0c1f6f2a7b10")

func fixtureID(name string) uuid.UUID {
	return uuid.NewSHA1(fixtureNamespace, []byte(name))
}

type Link struct {
	Label string
	URL   string
}

// Profile is the hero and about content. It is never stored.
type Profile struct {
	Name    string
	Roles   []string
	Tagline string
	Summary string
	CVURL   string
	Links   []Link
}

type Certification struct {
	Title        string
	Issuer       string
	Date         string
	CredentialID string
	Description  string
	Category     string
	Link         string
}

func DefaultProfile() Profile {
	return Profile{
		Name:  "Toqa Osama",
		Roles: []string{"React.Js Developer", "Software Developer"},
		Tagline: "Passionate about building innovative digital solutions with modern technologies. " +
			"Skilled in React, WordPress, and Shopify development, with growing expertise in Angular. " +
			"Experienced in leveraging Node.js, Python, and AI/ML for scalable applications.",
		Summary: "React Frontend Engineer with 1+ year of experience building scalable, performance-optimized web " +
			"applications using React and TypeScript. Experienced in component architecture, REST API integration, " +
			"async state handling, and mobile-first UI systems. Delivered measurable performance improvements " +
			"(30% render reduction, 40% mobile optimization) across production applications.",
		CVURL: "https://drive.google.com/file/d/1hzfagDyajyeseTIHeNkG61mF2LU6bVHy/view?usp=drivesdk",
		Links: []Link{
			{Label: "GitHub", URL: "https://github.com/toqaosama"},
			{Label: "LinkedIn", URL: "https://www.linkedin.com/in/toqa-osama-7b19b9225"},
			{Label: "WhatsApp", URL: "https://wa.me/201155388410"},
		},
	}
}

func Certifications() []Certification {
	return []Certification{
		{
			Title:        "AWS Certified Solutions Architect",
			Issuer:       "Amazon Web Services",
			Date:         "2023",
			CredentialID: "AWS-CSA-2023-001",
			Description:  "Demonstrates expertise in designing distributed systems on AWS platform.",
			Category:     "Cloud Computing",
			Link:         "https://aws.amazon.com/certification/",
		},
		{
			Title:        "Google Cloud Professional Developer",
			Issuer:       "Google Cloud",
			Date:         "2023",
			CredentialID: "GCP-PD-2023-002",
			Description:  "Validates skills in developing scalable applications on Google Cloud Platform.",
			Category:     "Cloud Computing",
			Link:         "https://cloud.google.com/certification",
		},
		{
			Title:        "TensorFlow Developer Certificate",
			Issuer:       "TensorFlow",
			Date:         "2022",
			CredentialID: "TF-DEV-2022-003",
			Description:  "Proves proficiency in building and deploying machine learning models.",
			Category:     "Machine Learning",
			Link:         "https://www.tensorflow.org/certificate",
		},
		{
			Title:        "Meta React Developer Professional",
			Issuer:       "Meta (Coursera)",
			Date:         "2022",
			CredentialID: "META-REACT-2022-004",
			Description:  "Comprehensive React.js development skills including advanced patterns.",
			Category:     "Frontend Development",
			Link:         "https://www.coursera.org/professional-certificates/meta-react-native",
		},
		{
			Title:        "MongoDB Certified Developer",
			Issuer:       "MongoDB University",
			Date:         "2022",
			CredentialID: "MDB-DEV-2022-005",
			Description:  "Expertise in MongoDB database design, development, and optimization.",
			Category:     "Database",
			Link:         "https://university.mongodb.com/certification",
		},
		{
			Title:        "Certified Scrum Master (CSM)",
			Issuer:       "Scrum Alliance",
			Date:         "2021",
			CredentialID: "CSM-2021-006",
			Description:  "Agile project management and Scrum framework expertise.",
			Category:     "Project Management",
			Link:         "https://www.scrumalliance.org/get-certified/scrum-master-track/certified-scrummaster",
		},
	}
}

func fixtureProject(title, description, image, liveURL, category string, featured bool, technologies ...string) models.Project {
	return models.Project{
		ID:           fixtureID("project/" + title),
		Title:        title,
		Description:  description,
		Technologies: technologies,
		Images:       []string{image},
		LiveURL:      liveURL,
		Featured:     featured,
		Category:     category,
	}
}

// Projects returns the built-in project list. Each call returns a fresh copy.
func Projects() []models.Project {
	return []models.Project{
		fixtureProject("AI-Powered E-commerce Platform",
			"Full-stack e-commerce solution with AI-powered product recommendations and intelligent search. "+
				"Features include real-time inventory management, payment processing, and analytics dashboard.",
			"https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=500", "https://ecommerce-demo.com",
			models.CategoryCoding, true, "React", "Node.js", "MongoDB", "TensorFlow", "Stripe", "AWS"),
		fixtureProject("Smart Document Analyzer",
			"Machine learning application that automatically extracts and categorizes information from various "+
				"document types using NLP and computer vision techniques.",
			"https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=500", "https://doc-analyzer.com",
			models.CategoryCoding, true, "Python", "FastAPI", "OpenCV", "spaCy", "PostgreSQL", "Docker"),
		fixtureProject("Real-time Collaboration Tool",
			"WebSocket-based collaboration platform with real-time editing, video conferencing, and project "+
				"management features. Built for remote teams.",
			"https://images.unsplash.com/photo-1552664730-d307ca884978?w=500", "https://collab-tool.com",
			models.CategoryCoding, false, "React", "Socket.io", "Express", "Redis", "WebRTC", "MaterialUI"),
		fixtureProject("Financial Dashboard",
			"Interactive financial dashboard with data visualization, portfolio tracking, and predictive analytics "+
				"using machine learning algorithms.",
			"https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=500", "https://finance-dash.com",
			models.CategoryDesign, false, "React", "D3.js", "Python", "Flask", "MySQL", "Chart.js"),
		fixtureProject("Mobile-First Social Platform",
			"Progressive Web App for social networking with offline capabilities, push notifications, and "+
				"real-time messaging.",
			"https://images.unsplash.com/photo-1611224923853-80b023f02d71?w=500", "https://social-pwa.com",
			models.CategoryCoding, false, "React", "PWA", "Firebase", "Node.js", "WebPush", "Tailwind"),
		fixtureProject("Healthcare Management System",
			"Comprehensive healthcare management platform with patient records, appointment scheduling, and "+
				"telemedicine capabilities.",
			"https://images.unsplash.com/photo-1576091160399-112ba8d25d1f?w=500", "https://healthcare-system.com",
			models.CategoryWordPress, false, "React", "Node.js", "MongoDB", "JWT", "Socket.io", "Bootstrap"),
	}
}

func fixtureSkill(title, category, icon, color string, skills ...string) models.SkillCategory {
	return models.SkillCategory{
		ID:       fixtureID("skill/" + title),
		Title:    title,
		Category: category,
		Skills:   skills,
		IconName: icon,
		Color:    color,
	}
}

func Skills() []models.SkillCategory {
	return []models.SkillCategory{
		fixtureSkill("Frontend Development", "Development", "Code", "primary",
			"React.js", "TypeScript", "HTML", "CSS", "Tailwind CSS", "Bootstrap", "WordPress", "UI/UX", "Shopify", "Framer", "Angular"),
		fixtureSkill("Database", "Data", "Database", "accent",
			"MySQL", "PhpMyAdmin", "Firebase", "Postman"),
		fixtureSkill("Backend Development", "Development", "Server", "secondary",
			"Node.js", "Python", "APIs"),
		fixtureSkill("AI & Machine Learning", "AI", "Brain", "primary",
			"Python", "Scikit-learn", "TensorFlow", "Keras", "NLP", "Computer Vision", "Deep Learning", "Reinforcement Learning", "Machine Learning"),
		fixtureSkill("Tools & Workflow", "Tools", "Wrench", "secondary",
			"Git", "GitHub", "Postman", "VS Code", "XAMPP", "Hostinger", "Google Analytics", "Google Search Console"),
		fixtureSkill("Design & UI/UX", "Design", "Palette", "accent",
			"Figma", "Adobe XD", "Responsive Design", "User Experience", "Photoshop", "Canva"),
		fixtureSkill("Data Entry & Management", "Data", "Database", "primary",
			"WordPress", "Excel"),
	}
}

func Experiences() []models.Experience {
	return []models.Experience{
		{
			ID:           fixtureID("experience/BestikWay"),
			Title:        "Senior Full-Stack Developer",
			Company:      "BestikWay",
			Period:       "2022 - Present",
			Location:     "Remote",
			Type:         "Full-time",
			Description:  "Leading development of scalable web applications using React, Node.js, and cloud technologies. Implemented AI-powered features that increased user engagement by 40%.",
			Technologies: []string{"React", "Node.js", "MongoDB", "AWS", "TypeScript"},
			Link:         "https://bestikway.com",
		},
		{
			ID:           fixtureID("experience/NeuroTech Solutions"),
			Title:        "AI/ML Developer",
			Company:      "NeuroTech Solutions",
			Period:       "2021 - 2022",
			Location:     "San Francisco, CA",
			Type:         "Contract",
			Description:  "Developed machine learning models for computer vision applications. Built NLP systems for automated content analysis and sentiment detection.",
			Technologies: []string{"Python", "TensorFlow", "OpenCV", "NLP", "Docker"},
			Link:         "https://neurotech.com",
		},
		{
			ID:           fixtureID("experience/Independent"),
			Title:        "Freelance Developer",
			Company:      "Independent",
			Period:       "2020 - 2021",
			Location:     "Remote",
			Type:         "Freelance",
			Description:  "Delivered custom web solutions for small to medium businesses. Specialized in WordPress development, e-commerce platforms, and responsive design.",
			Technologies: []string{"WordPress", "PHP", "JavaScript", "MySQL", "Bootstrap"},
		},
		{
			ID:           fixtureID("experience/TechStart Inc"),
			Title:        "Software Development Intern",
			Company:      "TechStart Inc",
			Period:       "2020",
			Location:     "Austin, TX",
			Type:         "Internship",
			Description:  "Contributed to frontend development of customer-facing applications. Gained experience with modern JavaScript frameworks and agile development practices.",
			Technologies: []string{"React", "Redux", "REST APIs", "Git", "Figma"},
			Link:         "https://techstart.com",
		},
	}
}
